// Package export loads base ontologies into a graph and serializes graphs to
// Turtle, N-Triples or JSON-LD.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/knakk/rdf"

	"github.com/c360studio/mapfgraph/graph"
)

var (
	// ErrOntologyLoad is returned when the base ontology cannot be read or
	// parsed.
	ErrOntologyLoad = errors.New("load ontology")

	// ErrSerialization is returned when the output graph cannot be written.
	ErrSerialization = errors.New("serialize graph")
)

// LoadOntology parses the ontology file at path into g. The syntax is chosen
// from the file extension (Turtle unless the file ends in .nt). It returns the
// number of triples read. An empty path loads nothing.
func LoadOntology(g *graph.Graph, path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w '%s': %v", ErrOntologyLoad, path, err)
	}
	defer f.Close()

	format := FormatTurtle
	if detected, ok := FormatFromPath(path); ok && detected == FormatNTriples {
		format = FormatNTriples
	}

	n, err := Decode(g, f, format)
	if err != nil {
		return n, fmt.Errorf("%w '%s': %v", ErrOntologyLoad, path, err)
	}
	return n, nil
}

// Decode reads triples in the given format from r into g.
func Decode(g *graph.Graph, r io.Reader, format Format) (int, error) {
	var syntax rdf.Format
	switch format {
	case FormatTurtle:
		syntax = rdf.Turtle
	case FormatNTriples:
		syntax = rdf.NTriples
	default:
		return 0, fmt.Errorf("unsupported input format: %s", format)
	}

	dec := rdf.NewTripleDecoder(r, syntax)
	n := 0
	for {
		t, err := dec.Decode()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		g.AddTriple(t)
		n++
	}
}

// Encode writes g to w in the given format. prefixes maps prefix names to
// namespace IRIs and is used where the format supports it.
func Encode(w io.Writer, g *graph.Graph, format Format, prefixes map[string]string) error {
	switch format {
	case FormatTurtle, FormatNTriples:
		return encodeTriples(w, g, format, prefixes)
	case FormatJSONLD:
		return encodeJSONLD(w, g, prefixes)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteFile serializes g to path. Nothing is written if encoding fails.
func WriteFile(path string, g *graph.Graph, format Format, prefixes map[string]string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, g, format, prefixes); err != nil {
		return fmt.Errorf("%w to '%s': %v", ErrSerialization, path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w to '%s': %v", ErrSerialization, path, err)
	}
	return nil
}

func encodeTriples(w io.Writer, g *graph.Graph, format Format, prefixes map[string]string) error {
	syntax := rdf.NTriples
	if format == FormatTurtle {
		syntax = rdf.Turtle
	}

	enc := rdf.NewTripleEncoder(w, syntax)
	if syntax == rdf.Turtle {
		// the encoder keys namespaces by IRI
		usable := turtlePrefixes(g, prefixes)
		enc.Namespaces = make(map[string]string, len(usable))
		for prefix, iri := range usable {
			enc.Namespaces[iri] = prefix
		}
	}

	if err := enc.EncodeAll(groupBySubject(g.Triples())); err != nil {
		return err
	}
	return enc.Close()
}

// turtlePrefixes drops every prefix under which some IRI of g has a local
// name that cannot be written as a Turtle prefixed name. Those IRIs are then
// written in full.
func turtlePrefixes(g *graph.Graph, prefixes map[string]string) map[string]string {
	usable := make(map[string]string, len(prefixes))
	for prefix, ns := range prefixes {
		usable[prefix] = ns
	}

	check := func(t rdf.Term) {
		if t.Type() != rdf.TermIRI {
			return
		}
		iri := nodeID(t)
		for prefix, ns := range usable {
			if strings.HasPrefix(iri, ns) && !validLocalName(iri[len(ns):]) {
				delete(usable, prefix)
			}
		}
	}
	for _, t := range g.Triples() {
		check(t.Subj)
		check(t.Pred)
		check(t.Obj)
		if lit, ok := t.Obj.(rdf.Literal); ok {
			check(lit.DataType)
		}
	}
	return usable
}

// validLocalName reports whether local can be written as the local part of
// a Turtle prefixed name without escapes. The accepted set is narrower than
// PN_LOCAL: it starts with a letter or '_', continues with letters, digits,
// '_', '-' or '.', and does not end in '.'.
func validLocalName(local string) bool {
	if local == "" || strings.HasSuffix(local, ".") {
		return false
	}
	for i, r := range local {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}

// groupBySubject reorders ts so triples sharing a subject are adjacent,
// keeping subjects in order of first appearance. Turtle output can then use
// predicate lists.
func groupBySubject(ts []rdf.Triple) []rdf.Triple {
	order := make([]string, 0)
	groups := make(map[string][]rdf.Triple)
	for _, t := range ts {
		key := t.Subj.Serialize(rdf.NTriples)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], t)
	}

	out := make([]rdf.Triple, 0, len(ts))
	for _, key := range order {
		out = append(out, groups[key]...)
	}
	return out
}
