package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/c360studio/mapfgraph/export"
	"github.com/c360studio/mapfgraph/integrate"
)

func batchCmd(opts *options) *cobra.Command {
	var (
		pattern string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert every log matching a glob pattern",
		Long: `Convert every simulation log matching --pattern. Patterns support ** for
recursive matching, e.g. 'runs/**/*.json'. Each output keeps the log's path
relative to the pattern base, under --out-dir, with the extension of the
output format. Logs that fail are reported and the rest still convert.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			// the configured output file does not apply to batches
			format := export.FormatTurtle
			if cfg.Format != "" {
				if format, err = export.ParseFormat(cfg.Format); err != nil {
					return err
				}
			}

			jobs, err := batchJobs(pattern, outDir, format)
			if err != nil {
				return err
			}

			collector := newCollector(cfg)
			var errs []error
			converted := 0
			for _, job := range jobs {
				if err := cmd.Context().Err(); err != nil {
					errs = append(errs, err)
					break
				}
				if err := os.MkdirAll(filepath.Dir(job.output), 0755); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", job.log, err))
					continue
				}

				runOpts, err := runOptions(cfg, logger, collector, job.log, job.output)
				if err != nil {
					return err
				}
				runOpts.Format = format
				if _, err := integrate.Run(cmd.Context(), runOpts); err != nil {
					logger.Error("Conversion failed", "log_file", job.log, "error", err)
					errs = append(errs, fmt.Errorf("%s: %w", job.log, err))
					continue
				}
				converted++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Converted %d of %d logs into %s\n", converted, len(jobs), outDir)
			return errors.Join(errs...)
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob pattern of logs to convert (supports **)")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory to write graphs to")
	_ = cmd.MarkFlagRequired("pattern")
	return cmd
}

type batchJob struct {
	log    string
	output string
}

// batchJobs expands pattern and maps every match to its output path.
func batchJobs(pattern, outDir string, format export.Format) ([]batchJob, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	info, ok := export.GetFormatInfo(format)
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	base = filepath.FromSlash(base)

	var jobs []batchJob
	for _, match := range matches {
		if st, err := os.Stat(match); err != nil || st.IsDir() {
			continue
		}
		rel, err := filepath.Rel(base, match)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = filepath.Base(match)
		}
		rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + info.Extension
		jobs = append(jobs, batchJob{log: match, output: filepath.Join(outDir, rel)})
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("no logs match %s", pattern)
	}
	return jobs, nil
}
