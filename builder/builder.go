// Package builder maps MAPF simulation logs onto the MA ontology.
//
// A Builder appends triples to a graph.Graph that already holds the base
// ontology. Build runs eight passes in a fixed order, since later passes
// refer to entities created by earlier ones:
//
//	environment → agents → agentPaths → agentSubplans →
//	collisionEvents → replanningStrategies → conflictAlerts → jointPlan
//
// Build is the single failure boundary of a run: the first schema violation
// (or a panic inside a pass) stops the build and is returned as a
// *MappingError naming the section and record.
package builder

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/mapfgraph/graph"
	"github.com/c360studio/mapfgraph/simlog"
	"github.com/c360studio/mapfgraph/vocabulary/ma"
)

// Log sections, in the order they are mapped.
const (
	SectionEnvironment          = simlog.SectionEnvironment
	SectionAgents               = simlog.SectionAgents
	SectionAgentPaths           = simlog.SectionAgentPaths
	SectionAgentSubplans        = simlog.SectionAgentSubplans
	SectionCollisionEvents      = simlog.SectionCollisionEvents
	SectionReplanningStrategies = simlog.SectionReplanningStrategies
	SectionConflictAlerts       = simlog.SectionConflictAlerts
	SectionJointPlan            = simlog.SectionJointPlan
)

// PassStats describes one completed mapping pass.
type PassStats struct {
	Section  string
	Records  int
	Triples  int
	Duration time.Duration
}

// Observer is notified after each pass completes.
type Observer interface {
	PassCompleted(stats PassStats)
}

// Builder maps one log document into a graph.
type Builder struct {
	graph    *graph.Graph
	vocab    *ma.Vocabulary
	plans    *graph.PlanIndex
	logger   *slog.Logger
	observer Observer

	blankPrefix string
	blanks      int
	stats       []PassStats
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithObserver registers an observer for pass statistics.
func WithObserver(o Observer) Option {
	return func(b *Builder) {
		b.observer = o
	}
}

// WithBlankPrefix sets the label prefix of generated blank nodes. The
// default is random per builder so blank nodes never clash with those of the
// base ontology.
func WithBlankPrefix(prefix string) Option {
	return func(b *Builder) {
		if prefix != "" {
			b.blankPrefix = prefix
		}
	}
}

// New creates a builder appending to g. Original subplans already present in
// g are indexed so resolved subplans can derive from them.
func New(g *graph.Graph, vocab *ma.Vocabulary, opts ...Option) *Builder {
	b := &Builder{
		graph:       g,
		vocab:       vocab,
		plans:       graph.NewPlanIndex(),
		logger:      slog.Default(),
		blankPrefix: "g" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8] + "n",
	}
	for _, opt := range opts {
		opt(b)
	}

	if n := b.plans.Seed(g, vocab.Type, vocab.OriginalSubPlan, vocab.BelongsToAgent); n > 0 {
		b.logger.Debug("Indexed original subplans from base graph", "count", n)
	}
	return b
}

// Stats returns the statistics of the passes completed so far.
func (b *Builder) Stats() []PassStats {
	out := make([]PassStats, len(b.stats))
	copy(out, b.stats)
	return out
}

type pass struct {
	section string
	run     func(doc *simlog.Document) (int, error)
}

func (b *Builder) passes() []pass {
	return []pass{
		{SectionEnvironment, b.mapEnvironment},
		{SectionAgents, b.mapAgents},
		{SectionAgentPaths, b.mapOriginalSubPlans},
		{SectionAgentSubplans, b.mapResolvedSubPlans},
		{SectionCollisionEvents, b.mapCollisionEvents},
		{SectionReplanningStrategies, b.mapReplanningStrategies},
		{SectionConflictAlerts, b.mapConflictAlerts},
		{SectionJointPlan, b.mapJointPlan},
	}
}

// Build maps doc into the graph.
func (b *Builder) Build(doc *simlog.Document) (err error) {
	if doc == nil {
		return fmt.Errorf("nil document")
	}

	section := ""
	defer func() {
		if r := recover(); r != nil {
			err = &MappingError{Section: section, Index: -1, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	for _, p := range b.passes() {
		section = p.section
		before := b.graph.Len()
		start := time.Now()

		records, err := p.run(doc)
		if err != nil {
			return err
		}

		stats := PassStats{
			Section:  p.section,
			Records:  records,
			Triples:  b.graph.Len() - before,
			Duration: time.Since(start),
		}
		b.stats = append(b.stats, stats)
		b.logger.Debug("Mapped section",
			"section", stats.Section,
			"records", stats.Records,
			"triples", stats.Triples)
		if b.observer != nil {
			b.observer.PassCompleted(stats)
		}
	}
	return nil
}
