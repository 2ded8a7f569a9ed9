package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the type of a transaction record.
type Kind int

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

var kindNames = map[Kind]string{
	KindDeposit:    "deposit",
	KindWithdrawal: "withdrawal",
	KindDispute:    "dispute",
	KindResolve:    "resolve",
	KindChargeback: "chargeback",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsValid checks if the kind is one of the known transaction types.
func (k Kind) IsValid() bool {
	_, ok := kindNames[k]
	return ok
}

// MovesFunds reports whether records of this kind carry an amount and
// create a ledger entry.
func (k Kind) MovesFunds() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// ParseKind parses a transaction type name, ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a deposit or withdrawal.
type TxID uint32

// Record is a single parsed input transaction.
type Record struct {
	Kind     Kind
	ClientID ClientID
	TxID     TxID
	// Amount is nil for kinds that do not move funds.
	Amount *decimal.Decimal
	// Line is the 1-based input line, zero when unknown.
	Line int
}
