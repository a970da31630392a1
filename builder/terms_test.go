package builder_test

import (
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/mapfgraph/simlog"
)

func TestTimeInstantTimestamps(t *testing.T) {
	tests := []struct {
		time int
		want string
	}{
		{0, "1970-01-01T00:00:00Z"},
		{7, "1970-01-01T00:00:07Z"},
		{59, "1970-01-01T00:00:59Z"},
		{60, "1970-01-01T00:01:00Z"},
		{3661, "1970-01-01T01:01:01Z"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			f := newFixture(t)
			instant, err := f.b.TimeInstant(tt.time)
			require.NoError(t, err)

			assert.True(t, f.g.Has(instant, f.vocab.Type, f.vocab.Instant))
			stamp := f.single(t, instant, f.vocab.InXSDDateTimeStamp)
			assert.Equal(t, `"`+tt.want+`"^^<http://www.w3.org/2001/XMLSchema#dateTimeStamp>`, stamp.Serialize(rdf.NTriples))
		})
	}
}

func TestTimeInstantIsShared(t *testing.T) {
	f := newFixture(t)
	a, err := f.b.TimeInstant(3)
	require.NoError(t, err)
	b, err := f.b.TimeInstant(3)
	require.NoError(t, err)

	assert.Equal(t, a.Serialize(rdf.NTriples), b.Serialize(rdf.NTriples))
	assert.Equal(t, 2, f.g.Len())
}

func TestTimeInstantRejectsNegative(t *testing.T) {
	f := newFixture(t)
	_, err := f.b.TimeInstant(-1)
	assert.Error(t, err)
	assert.Equal(t, 0, f.g.Len())
}

func TestTimeIntervalDoesNotValidateOrder(t *testing.T) {
	f := newFixture(t)
	interval, err := f.b.TimeInterval(5, 2)
	require.NoError(t, err)

	assert.True(t, f.g.Has(interval, f.vocab.HasBeginning, f.entity(t, "time_instant_5")))
	assert.True(t, f.g.Has(interval, f.vocab.HasEnd, f.entity(t, "time_instant_2")))
}

func TestGridLocationNodesAreDistinct(t *testing.T) {
	f := newFixture(t)
	a := f.b.GridLocation(simlog.At(1, 2))
	b := f.b.GridLocation(simlog.At(1, 2))

	assert.NotEqual(t, a.Serialize(rdf.NTriples), b.Serialize(rdf.NTriples))
	x, y := f.coords(t, a)
	assert.Equal(t, intLit(1), x)
	assert.Equal(t, intLit(2), y)
	assert.Equal(t, 6, f.g.Len())
}
