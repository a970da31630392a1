package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/mapfgraph/config"
	"github.com/c360studio/mapfgraph/integrate"
	"github.com/c360studio/mapfgraph/watch"
)

func watchCmd(opts *options) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the graph whenever the log or ontology changes",
		Long: `Convert the log once, then keep watching the log file and the base
ontology. Each settled change triggers a full rebuild. A failed rebuild is
logged and the previous output is left in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debounce") {
				cfg.Watch.Debounce = debounce
			}
			return runWatch(cmd, cfg, logger, opts.logFile)
		},
	}

	addConvertFlags(cmd, opts)
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Quiet period before rebuilding")
	return cmd
}

func runWatch(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, logFile string) error {
	ctx := cmd.Context()
	collector := newCollector(cfg)

	rebuild := func(reason string) {
		runOpts, err := runOptions(cfg, logger, collector, logFile, cfg.Output)
		if err != nil {
			logger.Error("Rebuild failed", "reason", reason, "error", err)
			return
		}
		res, err := integrate.Run(ctx, runOpts)
		if err != nil {
			logger.Error("Rebuild failed", "reason", reason, "error", err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rebuilt %s (%d triples)\n", res.Output, res.Triples)
	}

	paths := []string{logFile}
	if cfg.Ontology != "" {
		paths = append(paths, cfg.Ontology)
	}
	w, err := watch.NewWatcher(watch.Config{
		Paths:         paths,
		DebounceDelay: cfg.Watch.Debounce,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	rebuild("startup")
	for ev := range w.Events() {
		switch {
		case ev.Error != nil:
			logger.Warn("Cannot read changed file", "path", ev.Path, "error", ev.Error)
		case ev.Operation == watch.OpDelete:
			logger.Warn("Watched file removed, waiting for it to return", "path", ev.Path)
		default:
			rebuild(string(ev.Operation) + " " + ev.Path)
		}
	}

	logger.Info("Watch stopped")
	return nil
}
