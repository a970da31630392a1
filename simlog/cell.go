package simlog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Cell is an (x, y) grid coordinate, written as [x, y] in the log.
//
// Decoding never fails: anything that is not a two-element integer array
// yields a Cell with Valid unset, so the caller can decide whether that is a
// schema violation or an entry to skip.
type Cell struct {
	X, Y  int
	Valid bool
}

// At returns a valid cell.
func At(x, y int) Cell {
	return Cell{X: x, Y: y, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Cell) UnmarshalJSON(data []byte) error {
	*c = Cell{}
	var xy []int
	if err := json.Unmarshal(data, &xy); err != nil || len(xy) != 2 {
		return nil
	}
	*c = At(xy[0], xy[1])
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("[%d,%d]", c.X, c.Y)), nil
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// LocationKind discriminates the two shapes of a collision location.
type LocationKind string

const (
	// LocationVertex is a single cell, written [x, y].
	LocationVertex LocationKind = "vertex"

	// LocationEdge is a list of cells, written [[x1, y1], [x2, y2], ...].
	LocationEdge LocationKind = "edge"
)

// Location is the location field of a collision event, resolved at decode
// time into a vertex (one cell) or an edge (a list of cells).
//
// Cells holds only well formed pairs; entries that are not [x, y] integer
// pairs are dropped and counted in Dropped.
type Location struct {
	Kind    LocationKind
	Cells   []Cell
	Dropped int
}

// Vertex returns a single-cell location.
func Vertex(c Cell) Location {
	return Location{Kind: LocationVertex, Cells: []Cell{c}}
}

// Edge returns a multi-cell location.
func Edge(cells ...Cell) Location {
	return Location{Kind: LocationEdge, Cells: cells}
}

// Set reports whether the location key was present in the log at all.
func (l Location) Set() bool {
	return l.Kind != ""
}

// UnmarshalJSON implements json.Unmarshaler. A list whose entries are all
// lists is an edge; anything else, null included, is treated as a single
// vertex.
func (l *Location) UnmarshalJSON(data []byte) error {
	*l = Location{Kind: LocationVertex}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		l.Dropped = 1
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		l.Dropped = 1
		return nil
	}

	if allLists(entries) {
		l.Kind = LocationEdge
		for _, raw := range entries {
			var c Cell
			_ = c.UnmarshalJSON(raw)
			if !c.Valid {
				l.Dropped++
				continue
			}
			l.Cells = append(l.Cells, c)
		}
		return nil
	}

	var c Cell
	_ = c.UnmarshalJSON(data)
	if !c.Valid {
		l.Dropped = 1
		return nil
	}
	l.Cells = []Cell{c}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Location) MarshalJSON() ([]byte, error) {
	if l.Kind == LocationVertex && len(l.Cells) == 1 {
		return json.Marshal(l.Cells[0])
	}
	cells := l.Cells
	if cells == nil {
		cells = []Cell{}
	}
	return json.Marshal(cells)
}

func allLists(entries []json.RawMessage) bool {
	for _, raw := range entries {
		if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
			return false
		}
	}
	return true
}
