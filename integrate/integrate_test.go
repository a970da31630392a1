package integrate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/mapfgraph/builder"
	"github.com/c360studio/mapfgraph/export"
	"github.com/c360studio/mapfgraph/graph"
	"github.com/c360studio/mapfgraph/metrics"
	"github.com/c360studio/mapfgraph/simlog"
)

const scenario = `{"agents":[{"id":"a1"}], "agentPaths":[{"subplanId":"p1","agent":"a1","planCost":5.0,"steps":[{"time":0,"cell":[0,0]}]}]}`

const ontology = `@prefix ma: <http://example.org/ma#> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .

ma:Agent a owl:Class .
ma:OriginalSubPlan a owl:Class .
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readGraph(t *testing.T, path string) *graph.Graph {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	g := graph.New()
	_, err = export.Decode(g, f, export.FormatNTriples)
	require.NoError(t, err)
	return g
}

func countLines(data []byte, substr string) int {
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

func TestRunEndToEndScenario(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.nt")

	res, err := Run(context.Background(), Options{
		LogFile: writeFile(t, dir, "log.json", scenario),
		Output:  out,
		Format:  export.FormatNTriples,
		Logger:  quietLogger(),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 0, res.BaseTriples)
	assert.Equal(t, res.Triples, res.Added())
	assert.Len(t, res.Passes, 8)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 1, countLines(data, "<http://example.org/ma#Agent>"))
	assert.Equal(t, 1, countLines(data, "<http://example.org/ma#OriginalSubPlan>"))
	assert.Equal(t, 1, countLines(data, "<http://example.org/ma#AgentPathSegment>"))
	assert.Equal(t, 1, countLines(data, "<http://example.org/ma#GridLocation>"))
	assert.Contains(t, string(data), `<http://example.org/ma#p1> <http://example.org/ma#hasPlanCost> "5.0"^^<http://www.w3.org/2001/XMLSchema#decimal>`)
	assert.Contains(t, string(data), `<http://example.org/ma#p1> <http://example.org/ma#belongsToAgent> <http://example.org/ma#a1>`)
	assert.Contains(t, string(data), `"1970-01-01T00:00:00Z"`)
	assert.Contains(t, string(data), `"1970-01-01T00:00:01Z"`)

	assert.Equal(t, res.Triples, readGraph(t, out).Len())
}

func TestRunKeepsBaseOntology(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.nt")

	res, err := Run(context.Background(), Options{
		LogFile:  writeFile(t, dir, "log.json", scenario),
		Ontology: writeFile(t, dir, "ma.ttl", ontology),
		Output:   out,
		Format:   export.FormatNTriples,
		Logger:   quietLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.BaseTriples)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<http://example.org/ma#Agent> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class>`)
}

func TestRunTurtleAndJSONLD(t *testing.T) {
	for _, format := range []export.Format{export.FormatTurtle, export.FormatJSONLD} {
		t.Run(string(format), func(t *testing.T) {
			dir := t.TempDir()
			out := filepath.Join(dir, "out")

			_, err := Run(context.Background(), Options{
				LogFile: writeFile(t, dir, "log.json", scenario),
				Output:  out,
				Format:  format,
				Logger:  quietLogger(),
			})
			require.NoError(t, err)

			info, err := os.Stat(out)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestRunErrorsWriteNothing(t *testing.T) {
	tests := []struct {
		name     string
		log      string
		ontology string
		missing  bool
		want     error
	}{
		{name: "input not found", missing: true, want: simlog.ErrInputNotFound},
		{name: "input malformed", log: `{"agents": [`, want: simlog.ErrInputMalformed},
		{name: "schema violation", log: `{"agents":[{}]}`, want: builder.ErrSchemaViolation},
		{name: "field of wrong type", log: `{"collisionEvents":[{"id":"c1","type":"vertex","time":1.5,"location":[0,0],"agents":[]}]}`, want: builder.ErrSchemaViolation},
		{name: "ontology unreadable", log: scenario, ontology: "missing.ttl", want: export.ErrOntologyLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			out := filepath.Join(dir, "out.ttl")
			logFile := filepath.Join(dir, "absent.json")
			if !tt.missing {
				logFile = writeFile(t, dir, "log.json", tt.log)
			}
			ontologyPath := ""
			if tt.ontology != "" {
				ontologyPath = filepath.Join(dir, tt.ontology)
			}

			res, err := Run(context.Background(), Options{
				LogFile:  logFile,
				Ontology: ontologyPath,
				Output:   out,
				Logger:   quietLogger(),
			})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)

			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "output must not be written")
		})
	}
}

func TestRunReportsMappingLocation(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(context.Background(), Options{
		LogFile: writeFile(t, dir, "log.json", `{"agents":[{"id":"a1"},{"id":"a2","goalState":{}}]}`),
		Output:  filepath.Join(dir, "out.ttl"),
		Logger:  quietLogger(),
	})
	require.Error(t, err)

	var mapErr *builder.MappingError
	require.True(t, errors.As(err, &mapErr))
	assert.Equal(t, builder.SectionAgents, mapErr.Section)
	assert.Equal(t, 1, mapErr.Index)
	assert.Equal(t, "a2", mapErr.RecordID)
}

func TestRunSerializationFailure(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(context.Background(), Options{
		LogFile: writeFile(t, dir, "log.json", scenario),
		Output:  filepath.Join(dir, "no-such-dir", "out.ttl"),
		Logger:  quietLogger(),
	})
	assert.ErrorIs(t, err, export.ErrSerialization)
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{
		LogFile: writeFile(t, dir, "log.json", scenario),
		Output:  filepath.Join(dir, "out.ttl"),
		Logger:  quietLogger(),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunMissingOptions(t *testing.T) {
	_, err := Run(context.Background(), Options{Output: "out.ttl", Logger: quietLogger()})
	assert.Error(t, err)

	_, err = Run(context.Background(), Options{LogFile: "log.json", Logger: quietLogger()})
	assert.Error(t, err)
}

func TestRunWritesMetrics(t *testing.T) {
	dir := t.TempDir()
	metricsFile := filepath.Join(dir, "mapfgraph.prom")
	collector := metrics.NewCollector()

	_, err := Run(context.Background(), Options{
		LogFile:     writeFile(t, dir, "log.json", scenario),
		Output:      filepath.Join(dir, "out.ttl"),
		Logger:      quietLogger(),
		Metrics:     collector,
		MetricsFile: metricsFile,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `mapfgraph_runs_total{outcome="success"} 1`)
	assert.Contains(t, string(data), `mapfgraph_records_mapped_total{section="agents"} 1`)
}
