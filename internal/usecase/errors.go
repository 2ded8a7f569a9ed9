package usecase

import "errors"

var (
	// ErrInconsistentLedger is returned when account balances disagree with the ledger entries.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: account balances do not match entries")
)
