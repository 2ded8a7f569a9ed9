package csvio

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/payengine/internal/domain"
)

func TestWriter_WriteAccounts(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	err := w.WriteAccounts(context.Background(), []domain.Account{
		{ClientID: 2, Available: decimal.RequireFromString("1.5"), Held: decimal.Zero, Total: decimal.RequireFromString("1.5")},
		{ClientID: 1, Available: decimal.RequireFromString("-0.0001"), Held: decimal.RequireFromString("3"), Total: decimal.RequireFromString("2.9999"), Locked: true},
	})
	require.NoError(t, err)

	want := "client,available,held,total,locked\n" +
		"2,1.5000,0.0000,1.5000,false\n" +
		"1,-0.0001,3.0000,2.9999,true\n"
	assert.Equal(t, want, buf.String())
}

func TestWriter_EmptySnapshotHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteAccounts(context.Background(), nil))
	assert.Equal(t, "client,available,held,total,locked\n", buf.String())
}

func TestWriter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewWriter(&bytes.Buffer{}).WriteAccounts(ctx, []domain.Account{{ClientID: 1}})
	assert.ErrorIs(t, err, context.Canceled)
}
