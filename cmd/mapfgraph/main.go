// Package main provides the mapfgraph binary entry point.
// mapfgraph converts multi-agent path finding simulation logs into RDF
// knowledge graphs over the MA ontology.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/c360studio/mapfgraph/config"
	"github.com/c360studio/mapfgraph/integrate"
	"github.com/c360studio/mapfgraph/metrics"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "mapfgraph"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the flag values shared by the commands.
type options struct {
	configPath  string
	logLevel    string
	namespace   string
	ontology    string
	format      string
	metricsFile string

	logFile string
	output  string
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Convert MAPF simulation logs into RDF knowledge graphs",
		Long: `mapfgraph converts the JSON event log of a multi-agent path finding
simulation into an RDF graph over the MA ontology.

The graph starts from the base ontology and gains:
- the environment, its obstacles and the agents
- original and resolved subplans with their timed path segments
- collision events, replanning strategies and conflict alerts
- the joint plan composed of the subplans

Resolved subplans are linked back to the original plan of their agent and to
the conflict that triggered replanning.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.namespace, "namespace", "", "Instance namespace IRI, ending in '#' or '/'")
	pf.StringVar(&opts.ontology, "ontology", "./ontology/ma-ontology.ttl", "Base ontology file (Turtle or N-Triples); empty for none")
	pf.StringVar(&opts.format, "format", "", "Output format (turtle, ntriples, jsonld); inferred from the output extension if empty")
	pf.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after each run")

	addConvertFlags(cmd, opts)
	cmd.SetGlobalNormalizationFunc(normalizeFlagName)

	cmd.AddCommand(watchCmd(opts))
	cmd.AddCommand(batchCmd(opts))
	cmd.AddCommand(vocabCmd())

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func addConvertFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Simulation log to convert (JSON)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "mapf_instance.ttl", "Output file")
	_ = cmd.MarkFlagRequired("log-file")
}

// normalizeFlagName accepts underscore spellings such as --log_file.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig layers defaults, config files and explicitly set flags.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, *slog.Logger, error) {
	cfg, err := config.NewLoader(newLogger(opts.logLevel)).Load(opts.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	override("log-level", &cfg.LogLevel, opts.logLevel)
	override("namespace", &cfg.Namespace, opts.namespace)
	override("ontology", &cfg.Ontology, opts.ontology)
	override("format", &cfg.Format, opts.format)
	override("metrics-file", &cfg.MetricsFile, opts.metricsFile)
	override("output", &cfg.Output, opts.output)

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// runOptions builds the conversion options for logFile → output.
func runOptions(cfg *config.Config, logger *slog.Logger, collector *metrics.Collector, logFile, output string) (integrate.Options, error) {
	outCfg := *cfg
	outCfg.Output = output
	format, err := outCfg.OutputFormat()
	if err != nil {
		return integrate.Options{}, err
	}

	return integrate.Options{
		LogFile:     logFile,
		Ontology:    cfg.Ontology,
		Output:      output,
		Format:      format,
		Namespace:   cfg.Namespace,
		Logger:      logger,
		Metrics:     collector,
		MetricsFile: cfg.MetricsFile,
	}, nil
}

func newCollector(cfg *config.Config) *metrics.Collector {
	if cfg.MetricsFile == "" {
		return nil
	}
	return metrics.NewCollector()
}

func runConvert(cmd *cobra.Command, opts *options) error {
	cfg, logger, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	runOpts, err := runOptions(cfg, logger, newCollector(cfg), opts.logFile, cfg.Output)
	if err != nil {
		return err
	}

	res, err := integrate.Run(cmd.Context(), runOpts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Knowledge graph written to %s (%d triples, %d added)\n",
		res.Output, res.Triples, res.Added())
	return nil
}
