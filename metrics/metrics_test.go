package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/mapfgraph/builder"
)

func TestPassCompleted(t *testing.T) {
	c := NewCollector()

	c.PassCompleted(builder.PassStats{Section: builder.SectionAgents, Records: 2, Triples: 8, Duration: time.Millisecond})
	c.PassCompleted(builder.PassStats{Section: builder.SectionAgents, Records: 1, Triples: 4, Duration: time.Millisecond})
	c.PassCompleted(builder.PassStats{Section: builder.SectionJointPlan, Records: 1, Triples: 3})

	assert.Equal(t, 12.0, testutil.ToFloat64(c.triplesAdded.WithLabelValues(builder.SectionAgents)))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.recordsMapped.WithLabelValues(builder.SectionAgents)))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.triplesAdded.WithLabelValues(builder.SectionJointPlan)))
	assert.Equal(t, 2, testutil.CollectAndCount(c.passDuration))
}

func TestRunFinished(t *testing.T) {
	c := NewCollector()

	c.RunFinished(nil, 120)
	c.RunFinished(errors.New("boom"), 0)
	c.RunFinished(nil, 95)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.runs.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, 95.0, testutil.ToFloat64(c.graphTriples))
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector()
	c.PassCompleted(builder.PassStats{Section: builder.SectionEnvironment, Records: 1, Triples: 5})
	c.RunFinished(nil, 5)

	path := filepath.Join(t.TempDir(), "mapfgraph.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `mapfgraph_triples_added_total{section="environment"} 5`)
	assert.Contains(t, text, "mapfgraph_graph_triples 5")
	assert.True(t, strings.Contains(text, "# HELP mapfgraph_runs_total"))
}

func TestWriteTextfileBadPath(t *testing.T) {
	c := NewCollector()
	err := c.WriteTextfile(filepath.Join(t.TempDir(), "missing", "m.prom"))
	assert.Error(t, err)
}
