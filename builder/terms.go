package builder

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/knakk/rdf"

	"github.com/c360studio/mapfgraph/simlog"
)

// epoch anchors time instants: a time value t is encoded as epoch + t seconds.
var epoch = time.Unix(0, 0).UTC()

// originalTimeRange is the range of time values whose timestamp is written
// as 1970-01-01T00:00:SSZ.
const originalTimeRange = 60

// GridLocation adds a grid location node for cell and returns it.
func (b *Builder) GridLocation(cell simlog.Cell) rdf.Blank {
	node := b.blank()
	b.graph.Add(node, b.vocab.Type, b.vocab.GridLocation)
	b.graph.Add(node, b.vocab.XCoordinate, b.integer(cell.X))
	b.graph.Add(node, b.vocab.YCoordinate, b.integer(cell.Y))
	return node
}

// TimeInstant adds the instant for time value t and returns its IRI. The same
// t always maps to the same instant.
func (b *Builder) TimeInstant(t int) (rdf.IRI, error) {
	if t < 0 {
		return rdf.IRI{}, invalidField("time", fmt.Sprintf("must not be negative, got %d", t))
	}
	if t >= originalTimeRange {
		b.logger.Debug("Time value beyond one minute, encoding as full timestamp", "time", t)
	}

	instant, err := b.vocab.Entity(fmt.Sprintf("time_instant_%d", t))
	if err != nil {
		return rdf.IRI{}, err
	}
	stamp := epoch.Add(time.Duration(t) * time.Second).Format("2006-01-02T15:04:05Z")

	b.graph.Add(instant, b.vocab.Type, b.vocab.Instant)
	b.graph.Add(instant, b.vocab.InXSDDateTimeStamp, rdf.NewTypedLiteral(stamp, b.vocab.XSDDateTimeStamp))
	return instant, nil
}

// TimeInterval adds an interval beginning at start and ending at end.
func (b *Builder) TimeInterval(start, end int) (rdf.Blank, error) {
	begin, err := b.TimeInstant(start)
	if err != nil {
		return rdf.Blank{}, err
	}
	finish, err := b.TimeInstant(end)
	if err != nil {
		return rdf.Blank{}, err
	}

	node := b.blank()
	b.graph.Add(node, b.vocab.Type, b.vocab.Interval)
	b.graph.Add(node, b.vocab.HasBeginning, begin)
	b.graph.Add(node, b.vocab.HasEnd, finish)
	return node, nil
}

func (b *Builder) blank() rdf.Blank {
	b.blanks++
	// never fails for a non-empty label
	node, _ := rdf.NewBlank(b.blankPrefix + strconv.Itoa(b.blanks))
	return node
}

func (b *Builder) integer(n int) rdf.Literal {
	return rdf.NewTypedLiteral(strconv.Itoa(n), b.vocab.XSDInteger)
}

// decimal converts a JSON number into an xsd:decimal literal, keeping the
// lexical form written in the log when it is already a valid decimal.
func (b *Builder) decimal(field string, n *json.Number) (rdf.Literal, error) {
	if n == nil {
		return rdf.Literal{}, missingField(field)
	}
	f, err := n.Float64()
	if err != nil {
		return rdf.Literal{}, invalidField(field, "must be a number")
	}
	lexical := n.String()
	if strings.ContainsAny(lexical, "eE") {
		lexical = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return rdf.NewTypedLiteral(lexical, b.vocab.XSDDecimal), nil
}

func (b *Builder) plain(s string) rdf.Literal {
	// string literals are always accepted
	lit, _ := rdf.NewLiteral(s)
	return lit
}

// entity resolves a required identifier field to its IRI.
func (b *Builder) entity(field string, id *string) (rdf.IRI, error) {
	if id == nil {
		return rdf.IRI{}, missingField(field)
	}
	iri, err := b.vocab.Entity(*id)
	if err != nil {
		return rdf.IRI{}, invalidField(field, err.Error())
	}
	return iri, nil
}

func requireCell(field string, c *simlog.Cell) (simlog.Cell, error) {
	if c == nil {
		return simlog.Cell{}, missingField(field)
	}
	if !c.Valid {
		return simlog.Cell{}, invalidField(field, "must be an [x, y] integer pair")
	}
	return *c, nil
}
