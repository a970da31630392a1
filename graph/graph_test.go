package graph

import (
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iri(t *testing.T, s string) rdf.IRI {
	t.Helper()
	i, err := rdf.NewIRI(s)
	require.NoError(t, err)
	return i
}

func TestGraphAddIsSetSemantics(t *testing.T) {
	g := New()
	s := iri(t, "http://example.org/ma#a1")
	p := iri(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	o := iri(t, "http://example.org/ma#Agent")

	assert.True(t, g.Add(s, p, o))
	assert.False(t, g.Add(s, p, o))
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has(s, p, o))
}

func TestGraphKeepsInsertionOrder(t *testing.T) {
	g := New()
	p := iri(t, "http://example.org/ma#p")
	o := rdf.NewTypedLiteral("1", iri(t, "http://www.w3.org/2001/XMLSchema#integer"))
	for _, s := range []string{"c", "a", "b"} {
		g.Add(iri(t, "http://example.org/ma#"+s), p, o)
	}

	var got []string
	for _, tr := range g.Triples() {
		got = append(got, tr.Subj.Serialize(rdf.NTriples))
	}
	assert.Equal(t, []string{
		"<http://example.org/ma#c>",
		"<http://example.org/ma#a>",
		"<http://example.org/ma#b>",
	}, got)
}

func TestGraphMatch(t *testing.T) {
	g := New()
	typ := iri(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	agent := iri(t, "http://example.org/ma#Agent")
	platform := iri(t, "http://www.w3.org/ns/sosa/Platform")
	a1 := iri(t, "http://example.org/ma#a1")
	a2 := iri(t, "http://example.org/ma#a2")

	g.Add(a1, typ, agent)
	g.Add(a1, typ, platform)
	g.Add(a2, typ, agent)

	assert.Len(t, g.Match(nil, nil, nil), 3)
	assert.Len(t, g.Match(a1, nil, nil), 2)
	assert.Len(t, g.Match(nil, typ, agent), 2)
	assert.Len(t, g.Objects(a1, typ), 2)
	assert.Len(t, g.Subjects(typ, platform), 1)
	assert.Empty(t, g.Match(a2, typ, platform))
}

func TestSameTermDistinguishesKinds(t *testing.T) {
	b, err := rdf.NewBlank("x")
	require.NoError(t, err)
	i := iri(t, "http://example.org/x")
	l := rdf.NewTypedLiteral("x", iri(t, "http://www.w3.org/2001/XMLSchema#string"))

	assert.True(t, SameTerm(b, b))
	assert.False(t, SameTerm(b, i))
	assert.False(t, SameTerm(i, l))
}
