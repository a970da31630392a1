// Package integrate runs the full conversion: base ontology and simulation
// log in, serialized knowledge graph out.
package integrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/mapfgraph/builder"
	"github.com/c360studio/mapfgraph/export"
	"github.com/c360studio/mapfgraph/graph"
	"github.com/c360studio/mapfgraph/metrics"
	"github.com/c360studio/mapfgraph/simlog"
	"github.com/c360studio/mapfgraph/vocabulary/ma"
)

// Options configures one conversion run.
type Options struct {
	// LogFile is the simulation log to convert. Required.
	LogFile string
	// Ontology is the base ontology loaded before mapping. Empty starts from
	// an empty graph.
	Ontology string
	// Output is where the graph is written. Required.
	Output string
	// Format is the output serialization. Defaults to Turtle.
	Format export.Format
	// Namespace is the instance namespace. Defaults to ma.Namespace.
	Namespace string

	// BlankPrefix overrides the random blank node label prefix.
	BlankPrefix string

	Logger *slog.Logger
	// Metrics, when set, observes every pass and the run outcome.
	Metrics *metrics.Collector
	// MetricsFile, when set with Metrics, receives the metrics after the run.
	MetricsFile string
}

// Result summarizes a completed run.
type Result struct {
	RunID       string
	Output      string
	Format      export.Format
	BaseTriples int
	Triples     int
	Passes      []builder.PassStats
	Duration    time.Duration
}

// Added returns the number of triples the mapping added to the base graph.
func (r *Result) Added() int {
	return r.Triples - r.BaseTriples
}

// Run converts opts.LogFile into a graph written to opts.Output. Nothing is
// written when loading or mapping fails.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	res, err := run(ctx, opts, runID, logger)
	if opts.Metrics != nil {
		triples := 0
		if res != nil {
			triples = res.Triples
		}
		opts.Metrics.RunFinished(err, triples)
		if opts.MetricsFile != "" {
			if werr := opts.Metrics.WriteTextfile(opts.MetricsFile); werr != nil {
				logger.Warn("Failed to write metrics", "path", opts.MetricsFile, "error", werr)
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func run(ctx context.Context, opts Options, runID string, logger *slog.Logger) (*Result, error) {
	if opts.LogFile == "" {
		return nil, errors.New("log file is required")
	}
	if opts.Output == "" {
		return nil, errors.New("output path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	format := opts.Format
	if format == "" {
		format = export.FormatTurtle
	}
	namespace := opts.Namespace
	if namespace == "" {
		namespace = ma.Namespace
	}

	vocab, err := ma.NewVocabulary(namespace)
	if err != nil {
		return nil, fmt.Errorf("vocabulary: %w", err)
	}

	g := graph.New()
	if _, err := export.LoadOntology(g, opts.Ontology); err != nil {
		return nil, err
	}
	base := g.Len()
	if opts.Ontology != "" {
		logger.Debug("Loaded base ontology", "path", opts.Ontology, "triples", base)
	}

	doc, err := simlog.Load(opts.LogFile)
	if err != nil {
		return nil, err
	}

	builderOpts := []builder.Option{builder.WithLogger(logger), builder.WithBlankPrefix(opts.BlankPrefix)}
	if opts.Metrics != nil {
		builderOpts = append(builderOpts, builder.WithObserver(opts.Metrics))
	}
	b := builder.New(g, vocab, builderOpts...)
	if err := b.Build(doc); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := export.WriteFile(opts.Output, g, format, ma.Prefixes(namespace)); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:       runID,
		Output:      opts.Output,
		Format:      format,
		BaseTriples: base,
		Triples:     g.Len(),
		Passes:      b.Stats(),
		Duration:    time.Since(start),
	}
	logger.Info("Knowledge graph written",
		"log_file", opts.LogFile,
		"output", res.Output,
		"format", string(res.Format),
		"triples", res.Triples,
		"added", res.Added(),
		"duration", res.Duration)
	return res, nil
}
