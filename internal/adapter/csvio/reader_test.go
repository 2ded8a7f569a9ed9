package csvio

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/payengine/internal/domain"
)

// readAll drains r, separating records from parse errors.
func readAll(t *testing.T, r *Reader) ([]domain.Record, []*domain.ParseError) {
	t.Helper()

	var (
		records []domain.Record
		perrs   []*domain.ParseError
	)
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return records, perrs
		}
		var perr *domain.ParseError
		if errors.As(err, &perr) {
			perrs = append(perrs, perr)
			continue
		}
		require.NoError(t, err)
		records = append(records, rec)
	}
}

func TestReader_ParsesRecords(t *testing.T) {
	input := "type, client, tx, amount\n" +
		"deposit, 1, 1, 1.0\n" +
		"withdrawal,2,5,  0.5001\n" +
		"dispute, 1, 1,\n" +
		"resolve,1,1\n" +
		"chargeback,1,1,99\n"

	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	records, perrs := readAll(t, r)
	require.Empty(t, perrs)
	require.Len(t, records, 5)

	assert.Equal(t, domain.KindDeposit, records[0].Kind)
	assert.Equal(t, domain.ClientID(1), records[0].ClientID)
	assert.Equal(t, domain.TxID(1), records[0].TxID)
	require.NotNil(t, records[0].Amount)
	assert.Equal(t, "1.0000", domain.FormatAmount(*records[0].Amount))
	assert.Equal(t, 2, records[0].Line)

	assert.Equal(t, domain.KindWithdrawal, records[1].Kind)
	assert.Equal(t, "0.5001", domain.FormatAmount(*records[1].Amount))

	assert.Equal(t, domain.KindDispute, records[2].Kind)
	assert.Nil(t, records[2].Amount)

	assert.Equal(t, domain.KindResolve, records[3].Kind)
	assert.Equal(t, 5, records[3].Line)

	assert.Equal(t, domain.KindChargeback, records[4].Kind)
	assert.Nil(t, records[4].Amount, "amount on chargeback is ignored")
}

func TestReader_ColumnsInAnyOrder(t *testing.T) {
	input := "Amount,TX,Client,Type\n3.5,10,7,deposit\n"

	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	records, perrs := readAll(t, r)
	require.Empty(t, perrs)
	require.Len(t, records, 1)
	assert.Equal(t, domain.ClientID(7), records[0].ClientID)
	assert.Equal(t, domain.TxID(10), records[0].TxID)
	assert.Equal(t, "3.5000", domain.FormatAmount(*records[0].Amount))
}

func TestReader_MalformedRowsDoNotStopTheStream(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" +
		"refund,1,2,1.0\n" +
		"deposit,70000,3,1.0\n" +
		"deposit,1,-4,1.0\n" +
		"deposit,1,5,abc\n" +
		"deposit,1,6,0.00001\n" +
		"deposit,1,7\n" +
		"deposit,1,8,1,extra\n" +
		"dispute,1,1,not-a-number\n" +
		"deposit,1,9,2\n"

	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	records, perrs := readAll(t, r)
	require.Len(t, records, 4)
	assert.Equal(t, domain.TxID(1), records[0].TxID)
	assert.Equal(t, domain.TxID(7), records[1].TxID)
	assert.Nil(t, records[1].Amount, "missing amount is left to the engine")
	assert.Equal(t, domain.KindDispute, records[2].Kind)
	assert.Equal(t, domain.TxID(9), records[3].TxID)

	require.Len(t, perrs, 6)
	wantErrs := []error{
		domain.ErrUnknownKind,
		domain.ErrInvalidClientID,
		domain.ErrInvalidTxID,
		domain.ErrMalformedRecord,
		domain.ErrAmountPrecision,
		domain.ErrMalformedRecord,
	}
	wantLines := []int{3, 4, 5, 6, 7, 9}
	for i := range wantErrs {
		assert.ErrorIs(t, perrs[i], wantErrs[i], "parse error %d", i)
		assert.Equal(t, wantLines[i], perrs[i].Line, "parse error %d", i)
	}
}

func TestReader_ExponentAmountIsAParseError(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1e2000000000\n" +
		"deposit,1,2,1e-2000000000\n" +
		"withdrawal,1,3,1.5e2\n" +
		"deposit,1,4,2.5\n"

	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	records, perrs := readAll(t, r)
	require.Len(t, records, 1)
	assert.Equal(t, domain.TxID(4), records[0].TxID)
	assert.Equal(t, "2.5000", domain.FormatAmount(*records[0].Amount))

	require.Len(t, perrs, 3)
	for i, perr := range perrs {
		assert.ErrorIs(t, perr, domain.ErrMalformedRecord)
		assert.Equal(t, i+2, perr.Line)
	}
}

func TestReader_BareQuoteIsAParseError(t *testing.T) {
	input := "type,client,tx,amount\ndeposit,1,\"1,1.0\ndeposit,1,2,1.0\n"

	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	_, err = r.Next()
	var perr *domain.ParseError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, perr, domain.ErrMalformedRecord)
}

func TestNewReader_InvalidHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"missing tx column", "type,client,amount\n"},
		{"duplicate column", "type,client,tx,tx\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrInvalidHeader)
		})
	}
}

func TestReader_WithoutAmountColumn(t *testing.T) {
	r, err := NewReader(strings.NewReader("type,client,tx\ndispute,1,1\ndeposit,1,2\n"))
	require.NoError(t, err)

	records, perrs := readAll(t, r)
	require.Empty(t, perrs)
	require.Len(t, records, 2)
	assert.Nil(t, records[1].Amount)
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestReader_IOErrorIsNotAParseError(t *testing.T) {
	boom := errors.New("boom")
	r, err := NewReader(io.MultiReader(strings.NewReader("type,client,tx,amount\n"), failingReader{boom}))
	require.NoError(t, err)

	_, err = r.Next()
	require.ErrorIs(t, err, boom)

	var perr *domain.ParseError
	assert.False(t, errors.As(err, &perr))
}
