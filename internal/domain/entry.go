package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DisputeState tracks where a ledger entry is in its dispute lifecycle.
type DisputeState string

const (
	DisputeStateClean       DisputeState = "clean"
	DisputeStateDisputed    DisputeState = "disputed"
	DisputeStateResolved    DisputeState = "resolved"
	DisputeStateChargedBack DisputeState = "charged_back"
)

// IsTerminal reports whether no further dispute action may reference the entry.
func (s DisputeState) IsTerminal() bool {
	return s == DisputeStateResolved || s == DisputeStateChargedBack
}

// Entry is an accepted deposit or withdrawal that later records may dispute.
type Entry struct {
	TxID         TxID
	ClientID     ClientID
	Kind         Kind
	Amount       decimal.Decimal
	DisputeState DisputeState
}

// NewEntry returns a clean entry for an accepted deposit or withdrawal.
func NewEntry(rec Record, amount decimal.Decimal) *Entry {
	return &Entry{
		TxID:         rec.TxID,
		ClientID:     rec.ClientID,
		Kind:         rec.Kind,
		Amount:       amount,
		DisputeState: DisputeStateClean,
	}
}

// ValidateReference checks that clientID owns the entry.
func (e *Entry) ValidateReference(clientID ClientID) error {
	if e.ClientID != clientID {
		return fmt.Errorf("%w: tx %d belongs to client %d", ErrClientMismatch, e.TxID, e.ClientID)
	}
	return nil
}

// CanTransition validates a dispute action against the current state.
func (e *Entry) CanTransition(action Kind) error {
	switch action {
	case KindDispute:
		if e.DisputeState != DisputeStateClean {
			return fmt.Errorf("%w: tx %d is %s", ErrNotDisputable, e.TxID, e.DisputeState)
		}
	case KindResolve, KindChargeback:
		if e.DisputeState != DisputeStateDisputed {
			return fmt.Errorf("%w: tx %d is %s", ErrNotDisputed, e.TxID, e.DisputeState)
		}
	default:
		return fmt.Errorf("%w: %s is not a dispute action", ErrUnknownKind, action)
	}
	return nil
}

// Transition moves the entry to the state the action leads to.
// Callers must have checked CanTransition.
func (e *Entry) Transition(action Kind) {
	switch action {
	case KindDispute:
		e.DisputeState = DisputeStateDisputed
	case KindResolve:
		e.DisputeState = DisputeStateResolved
	case KindChargeback:
		e.DisputeState = DisputeStateChargedBack
	}
}
