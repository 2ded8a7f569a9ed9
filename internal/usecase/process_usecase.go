package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/infrastructure/metrics"
)

// ProcessUseCase drives a full run: it folds a record stream into the
// engine, then hands the final state to the writer and the reporter.
type ProcessUseCase struct {
	engine        *LedgerEngine
	writer        SnapshotWriter
	reporter      ErrorReporter
	reconciler    *ReconciliationUseCase
	idGen         IDGenerator
	metrics       *metrics.Metrics
	logger        zerolog.Logger
	progressEvery int
}

// ProcessConfig configures a ProcessUseCase.
type ProcessConfig struct {
	Engine   *LedgerEngine
	Writer   SnapshotWriter
	Reporter ErrorReporter
	IDGen    IDGenerator
	Metrics  *metrics.Metrics
	Logger   zerolog.Logger
	// Reconciler, when set, verifies the ledger before the snapshot is written.
	Reconciler *ReconciliationUseCase
	// ProgressEvery controls debug progress logs; zero disables them.
	ProgressEvery int
}

// NewProcessUseCase creates a new ProcessUseCase.
func NewProcessUseCase(cfg ProcessConfig) *ProcessUseCase {
	return &ProcessUseCase{
		engine:        cfg.Engine,
		writer:        cfg.Writer,
		reporter:      cfg.Reporter,
		reconciler:    cfg.Reconciler,
		idGen:         cfg.IDGen,
		metrics:       cfg.Metrics,
		logger:        cfg.Logger,
		progressEvery: cfg.ProgressEvery,
	}
}

// RunSummary describes a finished run.
type RunSummary struct {
	RunID    string
	Records  int
	Applied  int
	Rejected int
	Accounts int
	Duration time.Duration
}

// Run consumes source to the end. Rejected and malformed records are
// reported, not returned; an error means the run was aborted.
func (uc *ProcessUseCase) Run(ctx context.Context, source RecordSource) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{RunID: uc.idGen.Generate()}
	log := uc.logger.With().Str("run_id", summary.RunID).Logger()

	log.Info().Msg("processing started")

	for {
		if summary.Records%ContextCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			default:
			}
		}

		rec, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *domain.ParseError
			if !errors.As(err, &perr) {
				return summary, fmt.Errorf("read records: %w", err)
			}
			summary.Records++
			uc.engine.RecordParseError(perr)
			continue
		}

		summary.Records++
		if err := uc.engine.Apply(rec); err != nil {
			log.Error().Err(err).Int("line", rec.Line).Msg("internal engine fault, aborting run")
			return summary, err
		}

		if uc.progressEvery > 0 && summary.Records%uc.progressEvery == 0 {
			log.Debug().Int("records", summary.Records).Msg("progress")
		}
	}

	errs := uc.engine.Errors()
	accounts := uc.engine.Accounts()
	summary.Applied = uc.engine.Applied()
	summary.Rejected = len(errs)
	summary.Accounts = len(accounts)

	if uc.reconciler != nil {
		if err := uc.reconciler.CheckLedgerConsistency(); err != nil {
			log.Error().Err(err).Msg("ledger verification failed")
			return summary, err
		}
		log.Info().Msg("ledger verified")
	}

	if err := uc.writer.WriteAccounts(ctx, accounts); err != nil {
		return summary, fmt.Errorf("write snapshot: %w", err)
	}

	if err := uc.reporter.Report(ctx, errs); err != nil {
		return summary, fmt.Errorf("report errors: %w", err)
	}

	summary.Duration = time.Since(start)
	if uc.metrics != nil {
		uc.metrics.RunDuration.Observe(summary.Duration.Seconds())
	}

	log.Info().
		Int("records", summary.Records).
		Int("applied", summary.Applied).
		Int("rejected", summary.Rejected).
		Int("accounts", summary.Accounts).
		Dur("duration", summary.Duration).
		Msg("processing finished")

	return summary, nil
}
