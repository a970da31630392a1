package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanIndexFirstInsertedWins(t *testing.T) {
	idx := NewPlanIndex()
	a1 := iri(t, "http://example.org/ma#a1")
	a2 := iri(t, "http://example.org/ma#a2")
	p1 := iri(t, "http://example.org/ma#p1")
	p2 := iri(t, "http://example.org/ma#p2")

	_, ok := idx.First(a1)
	assert.False(t, ok)

	idx.Add(a1, p2)
	idx.Add(a1, p1)
	idx.Add(a1, p2)

	first, ok := idx.First(a1)
	assert.True(t, ok)
	assert.True(t, SameTerm(first, p2))
	assert.Len(t, idx.Plans(a1), 2)

	_, ok = idx.First(a2)
	assert.False(t, ok)
	assert.Equal(t, 1, idx.Len())
}

func TestPlanIndexSeed(t *testing.T) {
	g := New()
	typ := iri(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	orig := iri(t, "http://example.org/ma#OriginalSubPlan")
	resolved := iri(t, "http://example.org/ma#ResolvedSubPlan")
	belongs := iri(t, "http://example.org/ma#belongsToAgent")
	a1 := iri(t, "http://example.org/ma#a1")
	p0 := iri(t, "http://example.org/ma#p0")
	r0 := iri(t, "http://example.org/ma#r0")

	g.Add(p0, typ, orig)
	g.Add(p0, belongs, a1)
	g.Add(r0, typ, resolved)
	g.Add(r0, belongs, a1)

	idx := NewPlanIndex()
	assert.Equal(t, 1, idx.Seed(g, typ, orig, belongs))

	first, ok := idx.First(a1)
	assert.True(t, ok)
	assert.True(t, SameTerm(first, p0))
}
