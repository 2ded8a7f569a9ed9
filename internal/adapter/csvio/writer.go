package csvio

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/iho/payengine/internal/domain"
)

var snapshotHeader = []string{"client", "available", "held", "total", "locked"}

// Writer renders account snapshots as CSV. It implements usecase.SnapshotWriter.
type Writer struct {
	out io.Writer
}

// NewWriter creates a new Writer.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteAccounts writes a header and one row per account, in the given order.
func (w *Writer) WriteAccounts(ctx context.Context, accounts []domain.Account) error {
	cw := csv.NewWriter(w.out)

	if err := cw.Write(snapshotHeader); err != nil {
		return err
	}

	row := make([]string, len(snapshotHeader))
	for i, acc := range accounts {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		row[0] = strconv.FormatUint(uint64(acc.ClientID), 10)
		row[1] = domain.FormatAmount(acc.Available)
		row[2] = domain.FormatAmount(acc.Held)
		row[3] = domain.FormatAmount(acc.Total)
		row[4] = strconv.FormatBool(acc.Locked)

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
