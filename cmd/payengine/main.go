package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/iho/payengine/internal/adapter/csvio"
	"github.com/iho/payengine/internal/adapter/idgen"
	"github.com/iho/payengine/internal/adapter/report"
	"github.com/iho/payengine/internal/adapter/repository/memory"
	"github.com/iho/payengine/internal/infrastructure/config"
	"github.com/iho/payengine/internal/infrastructure/logger"
	"github.com/iho/payengine/internal/infrastructure/metrics"
	"github.com/iho/payengine/internal/usecase"
)

// stdinArg selects standard input as the transaction source.
const stdinArg = "-"

type options struct {
	logLevel    string
	logFormat   string
	metricsFile string
	verify      bool
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "payengine: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "payengine [flags] <transactions.csv | ->",
		Short: "Payments ledger engine",
		Long: `Applies a CSV stream of deposits, withdrawals, disputes, resolutions and
chargebacks, then prints the resulting client accounts as CSV on stdout.
Rejected records are reported on stderr.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			applyFlags(cmd, opts, cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, args[0], stdin, stdout, stderr)
		},
	}

	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&opts.logFormat, "log-format", "console", "Log format (console, json)")
	rootCmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	rootCmd.Flags().BoolVar(&opts.verify, "verify", false, "Reconcile accounts against the ledger before writing the snapshot")

	return rootCmd
}

// applyFlags overrides environment configuration with flags set on the command line.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}
	if flags.Changed("verify") {
		cfg.VerifyLedger = opts.verify
	}
}

func run(ctx context.Context, cfg *config.Config, path string, stdin io.Reader, stdout, stderr io.Writer) error {
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    stderr,
	})

	input, err := openInput(path, stdin)
	if err != nil {
		return err
	}
	defer input.Close()

	source, err := csvio.NewReader(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	// Initialize repositories
	accountRepo := memory.NewAccountRepository()
	entryRepo := memory.NewEntryRepository()

	// Initialize use cases
	engine := usecase.NewLedgerEngine(accountRepo, entryRepo, m)

	var reconciler *usecase.ReconciliationUseCase
	if cfg.VerifyLedger {
		reconciler = usecase.NewReconciliationUseCase(accountRepo, entryRepo)
	}

	process := usecase.NewProcessUseCase(usecase.ProcessConfig{
		Engine:        engine,
		Writer:        csvio.NewWriter(stdout),
		Reporter:      report.NewErrorReporter(log),
		IDGen:         idgen.NewULIDGenerator(),
		Metrics:       m,
		Logger:        log,
		Reconciler:    reconciler,
		ProgressEvery: cfg.ProgressEvery,
	})

	_, runErr := process.Run(ctx, source)

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			log.Error().Err(err).Str("path", cfg.MetricsFile).Msg("failed to write metrics")
			if runErr == nil {
				runErr = fmt.Errorf("write metrics: %w", err)
			}
		}
	}

	return runErr
}

func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == stdinArg {
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	return f, nil
}
