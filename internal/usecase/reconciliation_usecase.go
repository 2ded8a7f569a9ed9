package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/payengine/internal/domain"
)

// ReconciliationUseCase checks account balances against the ledger entries
// that produced them.
type ReconciliationUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(accountRepo AccountRepository, entryRepo EntryRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	ClientID          domain.ClientID
	RecordedAvailable decimal.Decimal
	RecordedHeld      decimal.Decimal
	RecordedTotal     decimal.Decimal
	RecordedLocked    bool
	ExpectedAvailable decimal.Decimal
	ExpectedHeld      decimal.Decimal
	ExpectedTotal     decimal.Decimal
	ExpectedLocked    bool
	IsReconciled      bool
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	CheckedAt          time.Time
}

type expectedBalances struct {
	held   decimal.Decimal
	total  decimal.Decimal
	locked bool
}

// GenerateReport recomputes every account from the ledger entries:
// total is deposits minus withdrawals minus charged back amounts, held is the
// sum of open disputes, and an account is locked iff it had a chargeback.
func (uc *ReconciliationUseCase) GenerateReport() *ReconciliationReport {
	expected := make(map[domain.ClientID]*expectedBalances)
	uc.entryRepo.Range(func(entry *domain.Entry) bool {
		exp, ok := expected[entry.ClientID]
		if !ok {
			exp = &expectedBalances{held: decimal.Zero, total: decimal.Zero}
			expected[entry.ClientID] = exp
		}

		switch entry.Kind {
		case domain.KindDeposit:
			exp.total = exp.total.Add(entry.Amount)
		case domain.KindWithdrawal:
			exp.total = exp.total.Sub(entry.Amount)
		}

		switch entry.DisputeState {
		case domain.DisputeStateDisputed:
			exp.held = exp.held.Add(entry.Amount)
		case domain.DisputeStateChargedBack:
			exp.total = exp.total.Sub(entry.Amount)
			exp.locked = true
		}
		return true
	})

	accounts := uc.accountRepo.List()
	report := &ReconciliationReport{
		TotalAccounts: len(accounts),
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	for _, acc := range accounts {
		exp, ok := expected[acc.ClientID]
		if !ok {
			exp = &expectedBalances{held: decimal.Zero, total: decimal.Zero}
		}

		result := &ReconciliationResult{
			ClientID:          acc.ClientID,
			RecordedAvailable: acc.Available,
			RecordedHeld:      acc.Held,
			RecordedTotal:     acc.Total,
			RecordedLocked:    acc.Locked,
			ExpectedAvailable: exp.total.Sub(exp.held),
			ExpectedHeld:      exp.held,
			ExpectedTotal:     exp.total,
			ExpectedLocked:    exp.locked,
		}
		result.IsReconciled = result.RecordedAvailable.Equal(result.ExpectedAvailable) &&
			result.RecordedHeld.Equal(result.ExpectedHeld) &&
			result.RecordedTotal.Equal(result.ExpectedTotal) &&
			result.RecordedLocked == result.ExpectedLocked

		if result.IsReconciled {
			report.ReconciledAccounts++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	return report
}

// CheckLedgerConsistency returns ErrInconsistentLedger if any account
// disagrees with its entries.
func (uc *ReconciliationUseCase) CheckLedgerConsistency() error {
	report := uc.GenerateReport()
	if len(report.Discrepancies) == 0 {
		return nil
	}

	first := report.Discrepancies[0]
	return fmt.Errorf(
		"%w: %d of %d accounts differ, first client %d: total=%s expected=%s held=%s expected=%s",
		ErrInconsistentLedger,
		len(report.Discrepancies),
		report.TotalAccounts,
		first.ClientID,
		first.RecordedTotal.String(),
		first.ExpectedTotal.String(),
		first.RecordedHeld.String(),
		first.ExpectedHeld.String(),
	)
}
