package domain

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Kind
	}{
		{"deposit", KindDeposit},
		{" Withdrawal ", KindWithdrawal},
		{"DISPUTE", KindDispute},
		{"resolve", KindResolve},
		{"chargeback", KindChargeback},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if err != nil {
			t.Fatalf("ParseKind(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := ParseKind("refund"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestKind_MovesFunds(t *testing.T) {
	t.Parallel()

	if !KindDeposit.MovesFunds() || !KindWithdrawal.MovesFunds() {
		t.Error("deposits and withdrawals move funds")
	}
	if KindDispute.MovesFunds() || KindResolve.MovesFunds() || KindChargeback.MovesFunds() {
		t.Error("dispute actions do not move funds")
	}
	if Kind(42).IsValid() {
		t.Error("unexpected valid kind")
	}
}

func TestErrorRecord_Message(t *testing.T) {
	t.Parallel()

	rec := ErrorRecord{Line: 3, Kind: KindWithdrawal, ClientID: 2, TxID: 8, Category: Categorize(ErrInsufficientFunds), Err: ErrInsufficientFunds}
	if rec.Category != CategoryValidation {
		t.Fatalf("expected validation category, got %s", rec.Category)
	}
	if got := rec.Message(); got != "line 3: withdrawal client=2 tx=8: insufficient available funds" {
		t.Fatalf("unexpected message %q", got)
	}

	if Categorize(ErrClientMismatch) != CategoryReference {
		t.Fatal("expected client mismatch to be a reference error")
	}
}
