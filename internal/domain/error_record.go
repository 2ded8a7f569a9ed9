package domain

import (
	"errors"
	"fmt"
)

// ErrorCategory groups rejections for reporting.
type ErrorCategory string

const (
	CategoryParse      ErrorCategory = "parse"
	CategoryValidation ErrorCategory = "validation"
	CategoryReference  ErrorCategory = "reference"
)

var referenceErrors = []error{
	ErrTransactionNotFound,
	ErrClientMismatch,
	ErrNotDisputable,
	ErrNotDisputed,
}

// Categorize maps a rejection to its category.
func Categorize(err error) ErrorCategory {
	for _, target := range referenceErrors {
		if errors.Is(err, target) {
			return CategoryReference
		}
	}
	return CategoryValidation
}

// ErrorRecord describes a rejected or malformed input record.
type ErrorRecord struct {
	Line     int
	Kind     Kind
	ClientID ClientID
	TxID     TxID
	Category ErrorCategory
	Err      error
}

// Message renders the record for the diagnostic stream.
func (r ErrorRecord) Message() string {
	if r.Category == CategoryParse {
		return fmt.Sprintf("line %d: %v", r.Line, r.Err)
	}
	return fmt.Sprintf("line %d: %s client=%d tx=%d: %v", r.Line, r.Kind, r.ClientID, r.TxID, r.Err)
}
