package usecase

import (
	"context"

	"github.com/iho/payengine/internal/domain"
)

// AccountRepository holds the accounts of a single run.
type AccountRepository interface {
	// GetOrCreate returns the account for clientID, creating it on first
	// reference. created is true when the account did not exist before.
	GetOrCreate(clientID domain.ClientID) (account *domain.Account, created bool)
	// List returns accounts in order of first appearance.
	List() []*domain.Account
}

// EntryRepository indexes accepted deposits and withdrawals by transaction id.
type EntryRepository interface {
	Create(entry *domain.Entry) error
	GetByID(txID domain.TxID) (*domain.Entry, error)
	Exists(txID domain.TxID) bool
	// Range calls fn for every entry until fn returns false.
	Range(fn func(entry *domain.Entry) bool)
}

// RecordSource yields parsed records in input order.
// Next returns io.EOF once the input is exhausted. A *domain.ParseError reports a
// malformed record; the source remains usable afterwards. Any other error
// is fatal.
type RecordSource interface {
	Next() (domain.Record, error)
}

// SnapshotWriter renders the final accounts.
type SnapshotWriter interface {
	WriteAccounts(ctx context.Context, accounts []domain.Account) error
}

// ErrorReporter surfaces rejected records to the diagnostic stream.
type ErrorReporter interface {
	Report(ctx context.Context, records []domain.ErrorRecord) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
