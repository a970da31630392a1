// Package graph provides the in-memory RDF graph that simulation logs are
// mapped into.
//
// A Graph is an append-only set of triples: adding a triple that is already
// present is a no-op, and nothing is ever removed. Insertion order is kept so
// serialized output is stable for a given input.
package graph

import (
	"github.com/knakk/rdf"
)

// Graph is an append-only RDF triple set. It is not safe for concurrent use.
type Graph struct {
	triples []rdf.Triple
	seen    map[string]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{seen: make(map[string]struct{})}
}

// Add inserts the triple (s, p, o). It reports whether the triple was new.
func (g *Graph) Add(s rdf.Subject, p rdf.Predicate, o rdf.Object) bool {
	return g.AddTriple(rdf.Triple{Subj: s, Pred: p, Obj: o})
}

// AddTriple inserts t. It reports whether the triple was new.
func (g *Graph) AddTriple(t rdf.Triple) bool {
	key := tripleKey(t)
	if _, ok := g.seen[key]; ok {
		return false
	}
	g.seen[key] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// AddAll inserts every triple in ts and returns how many were new.
func (g *Graph) AddAll(ts []rdf.Triple) int {
	n := 0
	for _, t := range ts {
		if g.AddTriple(t) {
			n++
		}
	}
	return n
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns the triples in insertion order. The slice is a copy.
func (g *Graph) Triples() []rdf.Triple {
	out := make([]rdf.Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Has reports whether the triple (s, p, o) is in the graph.
func (g *Graph) Has(s rdf.Subject, p rdf.Predicate, o rdf.Object) bool {
	_, ok := g.seen[tripleKey(rdf.Triple{Subj: s, Pred: p, Obj: o})]
	return ok
}

// Match returns the triples matching the pattern in insertion order. A nil
// term is a wildcard.
func (g *Graph) Match(s rdf.Subject, p rdf.Predicate, o rdf.Object) []rdf.Triple {
	var out []rdf.Triple
	for _, t := range g.triples {
		if s != nil && !SameTerm(t.Subj, s) {
			continue
		}
		if p != nil && !SameTerm(t.Pred, p) {
			continue
		}
		if o != nil && !SameTerm(t.Obj, o) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Objects returns the objects of all triples with subject s and predicate p.
func (g *Graph) Objects(s rdf.Subject, p rdf.Predicate) []rdf.Object {
	matches := g.Match(s, p, nil)
	out := make([]rdf.Object, 0, len(matches))
	for _, t := range matches {
		out = append(out, t.Obj)
	}
	return out
}

// Subjects returns the subjects of all triples with predicate p and object o.
func (g *Graph) Subjects(p rdf.Predicate, o rdf.Object) []rdf.Subject {
	matches := g.Match(nil, p, o)
	out := make([]rdf.Subject, 0, len(matches))
	for _, t := range matches {
		out = append(out, t.Subj)
	}
	return out
}

// SameTerm reports whether a and b are the same RDF term.
func SameTerm(a, b rdf.Term) bool {
	return a.Type() == b.Type() && termKey(a) == termKey(b)
}

func termKey(t rdf.Term) string {
	return t.Serialize(rdf.NTriples)
}

func tripleKey(t rdf.Triple) string {
	return termKey(t.Subj) + " " + termKey(t.Pred) + " " + termKey(t.Obj)
}
