package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iho/payengine/internal/domain"
)

// Column names of the transaction input.
const (
	ColumnType   = "type"
	ColumnClient = "client"
	ColumnTx     = "tx"
	ColumnAmount = "amount"
)

var requiredColumns = []string{ColumnType, ColumnClient, ColumnTx}

// ErrInvalidHeader is returned when the header row cannot be used.
var ErrInvalidHeader = errors.New("invalid csv header")

// Reader streams transaction records from CSV input one row at a time.
// It implements usecase.RecordSource.
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
	width   int
}

// NewReader reads the header row and prepares a Reader for the data rows.
// Columns are matched by name, case-insensitively, in any order; the amount
// column is optional.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: input is empty", ErrInvalidHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	columns, err := createColumnMap(headers)
	if err != nil {
		return nil, err
	}

	return &Reader{
		csv:     cr,
		columns: columns,
		width:   len(headers),
	}, nil
}

// Next returns the next record, a *domain.ParseError for a malformed row,
// io.EOF at the end of input, or another error if reading failed.
func (r *Reader) Next() (domain.Record, error) {
	fields, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return domain.Record{}, io.EOF
	}
	if err != nil {
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			return domain.Record{}, &domain.ParseError{
				Line: csvErr.Line,
				Err:  fmt.Errorf("%w: %v", domain.ErrMalformedRecord, csvErr.Err),
			}
		}
		return domain.Record{}, err
	}

	line, _ := r.csv.FieldPos(0)

	rec, err := r.parseRecord(fields)
	if err != nil {
		return domain.Record{}, &domain.ParseError{Line: line, Err: err}
	}
	rec.Line = line

	return rec, nil
}

func (r *Reader) parseRecord(fields []string) (domain.Record, error) {
	if !r.acceptsWidth(len(fields)) {
		return domain.Record{}, fmt.Errorf("%w: expected %d fields, got %d", domain.ErrMalformedRecord, r.width, len(fields))
	}

	kind, err := domain.ParseKind(r.field(fields, ColumnType))
	if err != nil {
		return domain.Record{}, err
	}

	client, err := strconv.ParseUint(r.field(fields, ColumnClient), 10, 16)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: %q", domain.ErrInvalidClientID, r.field(fields, ColumnClient))
	}

	tx, err := strconv.ParseUint(r.field(fields, ColumnTx), 10, 32)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: %q", domain.ErrInvalidTxID, r.field(fields, ColumnTx))
	}

	rec := domain.Record{
		Kind:     kind,
		ClientID: domain.ClientID(client),
		TxID:     domain.TxID(tx),
	}

	// Amounts on dispute actions are ignored, even malformed ones.
	if kind.MovesFunds() {
		if raw := r.field(fields, ColumnAmount); raw != "" {
			amount, err := domain.ParseAmount(raw)
			if err != nil {
				return domain.Record{}, err
			}
			rec.Amount = &amount
		}
	}

	return rec, nil
}

// acceptsWidth allows rows that drop a trailing amount column entirely.
func (r *Reader) acceptsWidth(n int) bool {
	if n == r.width {
		return true
	}
	idx, ok := r.columns[ColumnAmount]
	return ok && idx == r.width-1 && n == r.width-1
}

// field returns the trimmed value of a named column, or "" if the row does not have it.
func (r *Reader) field(fields []string, name string) string {
	idx, ok := r.columns[name]
	if !ok || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}

// createColumnMap maps column names to their indices and checks required columns.
func createColumnMap(headers []string) (map[string]int, error) {
	columns := make(map[string]int, len(headers))
	for i, header := range headers {
		name := strings.ToLower(strings.TrimSpace(header))
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidHeader, name)
		}
		columns[name] = i
	}

	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, fmt.Errorf("%w: required column %q not found", ErrInvalidHeader, col)
		}
	}

	return columns, nil
}
