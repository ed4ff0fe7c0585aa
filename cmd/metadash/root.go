package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"metadash/internal/config"
	"metadash/internal/infrastructure"
	"metadash/pkg/contracts"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	configFile string
	dataPath   string
	maxRows    int
	outputDir  string
	port       int
	logLevel   string
}

// environment is the configured runtime a subcommand works in
type environment struct {
	cfg       *config.Config
	paths     *config.Paths
	logger    *slog.Logger
	providers *infrastructure.OTelProviders
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "metadash",
		Short: "Exploratory analysis of a paper metadata CSV",
		Long: `metadash loads a CORD-19 style metadata.csv, drops rows without a title
or a parseable publish time and summarises what is left.

  metadash explore   print the shape, missing values and a cleaning report
  metadash report    write the six PNG charts to the output directory
  metadash serve     run the interactive dashboard`,
		Version:       contracts.GetVersionString(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML config file (default: metadash.yaml if present)")
	flags.StringVar(&opts.dataPath, "data", "", "metadata CSV to read")
	flags.IntVar(&opts.maxRows, "rows", 0, "maximum number of rows to load (0 reads every row)")
	flags.StringVar(&opts.outputDir, "out", "", "directory for report charts")
	flags.IntVar(&opts.port, "port", 0, "dashboard listen port")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newExploreCmd(opts),
		newReportCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// loadConfig reads the config file and environment, then applies the flags
// that were set on the command line
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Dataset.Path = o.dataPath
	}
	if flags.Changed("rows") {
		if o.maxRows < 0 {
			return nil, fmt.Errorf("--rows must not be negative: %d", o.maxRows)
		}
		cfg.Dataset.BatchMaxRows = o.maxRows
		cfg.Dataset.DashboardMaxRows = o.maxRows
	}
	if flags.Changed("out") {
		cfg.Report.OutputDir = o.outputDir
	}
	if flags.Changed("port") {
		cfg.Server.Port = o.port
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// setup builds the environment for a subcommand. The returned close function
// flushes telemetry and must always be called.
func (o *rootOptions) setup(cmd *cobra.Command) (*environment, func(), error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	paths, err := config.ResolvePaths(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	paths.LogPathResolution(logger)

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
		if err := infrastructure.CloseLogFile(); err != nil {
			logger.Warn("failed to close log file", slog.String("error", err.Error()))
		}
	}

	logger.Debug("configuration loaded",
		slog.String("command", cmd.Name()),
		slog.String("dataset", paths.DataFile),
		slog.String("version", contracts.GetVersionString()))

	return &environment{
		cfg:       cfg,
		paths:     paths,
		logger:    logger,
		providers: providers,
	}, closeFn, nil
}
