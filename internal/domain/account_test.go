package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		available   decimal.Decimal
		debitAmount decimal.Decimal
		expectError bool
	}{
		{
			name:        "debit more than available",
			available:   decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(150),
			expectError: true,
		},
		{
			name:        "debit exact available",
			available:   decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(100),
			expectError: false,
		},
		{
			name:        "debit less than available",
			available:   decimal.NewFromInt(100),
			debitAmount: decimal.RequireFromString("99.9999"),
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewAccount(1)
			acc.Available = tt.available
			acc.Total = tt.available

			err := acc.ValidateDebit(tt.debitAmount)

			if tt.expectError && !errors.Is(err, ErrInsufficientFunds) {
				t.Errorf("expected ErrInsufficientFunds, got %v", err)
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_Movements(t *testing.T) {
	ten := decimal.NewFromInt(10)
	four := decimal.NewFromInt(4)

	acc := NewAccount(7)
	if err := acc.Credit(ten); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if err := acc.Debit(four); err != nil {
		t.Fatalf("debit: %v", err)
	}
	if err := acc.Hold(four); err != nil {
		t.Fatalf("hold: %v", err)
	}

	assertBalances(t, acc, "2", "4", "6")

	if err := acc.Release(four); err != nil {
		t.Fatalf("release: %v", err)
	}
	assertBalances(t, acc, "6", "0", "6")

	if err := acc.Hold(four); err != nil {
		t.Fatalf("hold: %v", err)
	}
	if err := acc.Reverse(four); err != nil {
		t.Fatalf("reverse: %v", err)
	}
	assertBalances(t, acc, "2", "0", "2")

	if !acc.Locked {
		t.Error("expected account to be locked after reversal")
	}
}

func TestAccount_OverflowLeavesStateUntouched(t *testing.T) {
	acc := NewAccount(1)
	if err := acc.Credit(MaxAmount); err != nil {
		t.Fatalf("credit max: %v", err)
	}

	err := acc.Credit(decimal.RequireFromString("0.0001"))
	if !errors.Is(err, ErrArithmeticOverflow) {
		t.Fatalf("expected ErrArithmeticOverflow, got %v", err)
	}
	if !IsFatal(err) {
		t.Error("expected overflow to be fatal")
	}

	assertBalances(t, acc, MaxAmount.String(), "0", MaxAmount.String())
}

func TestAccount_ReleaseMoreThanHeldViolatesInvariant(t *testing.T) {
	acc := NewAccount(1)
	if err := acc.Credit(decimal.NewFromInt(5)); err != nil {
		t.Fatalf("credit: %v", err)
	}

	err := acc.Release(decimal.NewFromInt(1))
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}

	assertBalances(t, acc, "5", "0", "5")
}

func TestAccount_CheckInvariant(t *testing.T) {
	acc := &Account{
		ClientID:  3,
		Available: decimal.NewFromInt(1),
		Held:      decimal.NewFromInt(1),
		Total:     decimal.NewFromInt(3),
	}

	if err := acc.CheckInvariant(); !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}
}

func assertBalances(t *testing.T, acc *Account, available, held, total string) {
	t.Helper()

	if !acc.Available.Equal(decimal.RequireFromString(available)) {
		t.Errorf("expected available %s, got %s", available, acc.Available)
	}
	if !acc.Held.Equal(decimal.RequireFromString(held)) {
		t.Errorf("expected held %s, got %s", held, acc.Held)
	}
	if !acc.Total.Equal(decimal.RequireFromString(total)) {
		t.Errorf("expected total %s, got %s", total, acc.Total)
	}
}
