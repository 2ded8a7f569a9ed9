package domain

import (
	"errors"
	"fmt"
)

var (
	// Validation errors
	ErrDuplicateTransaction = errors.New("transaction id already exists")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrMissingAmount        = errors.New("amount is required")
	ErrInsufficientFunds    = errors.New("insufficient available funds")
	ErrAccountLocked        = errors.New("account is locked")

	// Reference errors
	ErrTransactionNotFound = errors.New("referenced transaction not found")
	ErrClientMismatch      = errors.New("referenced transaction belongs to another client")
	ErrNotDisputable       = errors.New("transaction is not in a disputable state")
	ErrNotDisputed         = errors.New("transaction is not under dispute")

	// Parse errors
	ErrUnknownKind      = errors.New("unknown transaction type")
	ErrInvalidClientID  = errors.New("invalid client id")
	ErrInvalidTxID      = errors.New("invalid transaction id")
	ErrAmountPrecision  = errors.New("amount has more than 4 fractional digits")
	ErrAmountOutOfRange = errors.New("amount out of range")
	ErrMalformedRecord  = errors.New("malformed record")

	// Fatal errors
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrInvariantViolation = errors.New("account invariant violated")
)

// IsFatal reports whether err signals an engine fault rather than bad input.
func IsFatal(err error) bool {
	return errors.Is(err, ErrArithmeticOverflow) || errors.Is(err, ErrInvariantViolation)
}

// ParseError reports a malformed input record.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
