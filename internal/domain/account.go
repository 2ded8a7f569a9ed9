package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Account is a client's balance sheet.
type Account struct {
	ClientID  ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// NewAccount returns an empty, unlocked account.
func NewAccount(clientID ClientID) *Account {
	return &Account{
		ClientID:  clientID,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
	}
}

// ValidateDebit checks if amount can be withdrawn from available funds.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// Credit adds amount to available and total funds.
func (a *Account) Credit(amount decimal.Decimal) error {
	return a.apply(amount, decimal.Zero, amount)
}

// Debit removes amount from available and total funds.
func (a *Account) Debit(amount decimal.Decimal) error {
	return a.apply(amount.Neg(), decimal.Zero, amount.Neg())
}

// Hold moves amount from available to held funds.
func (a *Account) Hold(amount decimal.Decimal) error {
	return a.apply(amount.Neg(), amount, decimal.Zero)
}

// Release moves amount from held back to available funds.
func (a *Account) Release(amount decimal.Decimal) error {
	return a.apply(amount, amount.Neg(), decimal.Zero)
}

// Reverse removes held funds permanently and locks the account.
func (a *Account) Reverse(amount decimal.Decimal) error {
	if err := a.apply(decimal.Zero, amount.Neg(), amount.Neg()); err != nil {
		return err
	}
	a.Locked = true
	return nil
}

// CheckInvariant verifies total == available + held and held >= 0.
func (a *Account) CheckInvariant() error {
	if !a.Total.Equal(a.Available.Add(a.Held)) {
		return fmt.Errorf("%w: client %d total=%s available=%s held=%s",
			ErrInvariantViolation, a.ClientID, a.Total, a.Available, a.Held)
	}
	if a.Held.IsNegative() {
		return fmt.Errorf("%w: client %d held=%s is negative", ErrInvariantViolation, a.ClientID, a.Held)
	}
	return nil
}

// apply shifts all three balances at once; nothing changes on error.
func (a *Account) apply(dAvailable, dHeld, dTotal decimal.Decimal) error {
	available, err := Add(a.Available, dAvailable)
	if err != nil {
		return err
	}
	held, err := Add(a.Held, dHeld)
	if err != nil {
		return err
	}
	total, err := Add(a.Total, dTotal)
	if err != nil {
		return err
	}

	next := Account{ClientID: a.ClientID, Available: available, Held: held, Total: total, Locked: a.Locked}
	if err := next.CheckInvariant(); err != nil {
		return err
	}

	a.Available, a.Held, a.Total = available, held, total
	return nil
}
