package report

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/payengine/internal/domain"
)

// ErrorReporter writes rejected records to a zerolog logger, one warn line
// per record. It implements usecase.ErrorReporter.
type ErrorReporter struct {
	logger zerolog.Logger
}

// NewErrorReporter creates a new ErrorReporter.
func NewErrorReporter(logger zerolog.Logger) *ErrorReporter {
	return &ErrorReporter{logger: logger}
}

// Report logs every record followed by a per-category summary.
func (r *ErrorReporter) Report(ctx context.Context, records []domain.ErrorRecord) error {
	counts := make(map[domain.ErrorCategory]int)

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}

		counts[rec.Category]++

		event := r.logger.Warn().
			Int("line", rec.Line).
			Str("category", string(rec.Category)).
			Err(rec.Err)
		if rec.Category != domain.CategoryParse {
			event = event.
				Str("type", rec.Kind.String()).
				Uint16("client", uint16(rec.ClientID)).
				Uint32("tx", uint32(rec.TxID))
		}
		event.Msg("record rejected")
	}

	if len(records) > 0 {
		r.logger.Warn().
			Int("total", len(records)).
			Int(string(domain.CategoryParse), counts[domain.CategoryParse]).
			Int(string(domain.CategoryValidation), counts[domain.CategoryValidation]).
			Int(string(domain.CategoryReference), counts[domain.CategoryReference]).
			Msg("records rejected during run")
	}

	return nil
}
