package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/infrastructure/metrics"
)

// LedgerEngine applies transaction records to client accounts.
//
// Rejected records never stop the engine; they are collected and exposed
// through Errors. The engine is not safe for concurrent use: records must be
// applied one at a time in input order.
type LedgerEngine struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	metrics     *metrics.Metrics

	errors  []domain.ErrorRecord
	applied int
}

// NewLedgerEngine creates a new LedgerEngine.
func NewLedgerEngine(accountRepo AccountRepository, entryRepo EntryRepository, metrics *metrics.Metrics) *LedgerEngine {
	return &LedgerEngine{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		metrics:     metrics,
	}
}

// Apply processes a single record. A non-nil error means the engine hit an
// internal fault (overflow or a broken account invariant) and the run must
// be aborted; ordinary rejections are recorded and nil is returned.
func (e *LedgerEngine) Apply(rec domain.Record) error {
	if !rec.Kind.IsValid() {
		e.reject(rec, fmt.Errorf("%w: %s", domain.ErrUnknownKind, rec.Kind))
		return nil
	}

	account, created := e.accountRepo.GetOrCreate(rec.ClientID)
	if created && e.metrics != nil {
		e.metrics.AccountsCreated.Inc()
	}

	var err error
	switch rec.Kind {
	case domain.KindDeposit:
		err = e.deposit(account, rec)
	case domain.KindWithdrawal:
		err = e.withdraw(account, rec)
	case domain.KindDispute:
		err = e.dispute(account, rec)
	case domain.KindResolve:
		err = e.resolve(account, rec)
	case domain.KindChargeback:
		err = e.chargeback(account, rec)
	}

	if err != nil {
		if domain.IsFatal(err) {
			return fmt.Errorf("line %d: %s client=%d tx=%d: %w", rec.Line, rec.Kind, rec.ClientID, rec.TxID, err)
		}
		e.reject(rec, err)
		return nil
	}

	e.applied++
	if e.metrics != nil {
		e.metrics.RecordsProcessed.WithLabelValues(rec.Kind.String()).Inc()
	}

	return nil
}

// RecordParseError stores a malformed input record without touching any state.
func (e *LedgerEngine) RecordParseError(perr *domain.ParseError) {
	e.errors = append(e.errors, domain.ErrorRecord{
		Line:     perr.Line,
		Category: domain.CategoryParse,
		Err:      perr.Err,
	})

	if e.metrics != nil {
		e.metrics.ParseErrors.Inc()
	}
}

// Accounts returns a copy of every account in order of first appearance.
func (e *LedgerEngine) Accounts() []domain.Account {
	list := e.accountRepo.List()
	accounts := make([]domain.Account, 0, len(list))
	for _, acc := range list {
		accounts = append(accounts, *acc)
	}
	return accounts
}

// Errors returns a copy of the collected error records in arrival order.
func (e *LedgerEngine) Errors() []domain.ErrorRecord {
	out := make([]domain.ErrorRecord, len(e.errors))
	copy(out, e.errors)
	return out
}

// Applied returns the number of records that changed state.
func (e *LedgerEngine) Applied() int {
	return e.applied
}

func (e *LedgerEngine) deposit(account *domain.Account, rec domain.Record) error {
	amount, err := e.validateMovement(account, rec)
	if err != nil {
		return err
	}

	if err := account.Credit(amount); err != nil {
		return err
	}

	return e.storeEntry(rec, amount)
}

func (e *LedgerEngine) withdraw(account *domain.Account, rec domain.Record) error {
	amount, err := e.validateMovement(account, rec)
	if err != nil {
		return err
	}

	if err := account.ValidateDebit(amount); err != nil {
		return fmt.Errorf("%w: available %s, requested %s", err, account.Available, amount)
	}

	if err := account.Debit(amount); err != nil {
		return err
	}

	return e.storeEntry(rec, amount)
}

func (e *LedgerEngine) dispute(account *domain.Account, rec domain.Record) error {
	entry, err := e.lookupEntry(account, rec)
	if err != nil {
		return err
	}

	if err := account.Hold(entry.Amount); err != nil {
		return err
	}
	entry.Transition(domain.KindDispute)

	e.countDispute(metrics.DisputeOpened)
	return nil
}

func (e *LedgerEngine) resolve(account *domain.Account, rec domain.Record) error {
	entry, err := e.lookupEntry(account, rec)
	if err != nil {
		return err
	}

	if err := account.Release(entry.Amount); err != nil {
		return err
	}
	entry.Transition(domain.KindResolve)

	e.countDispute(metrics.DisputeResolved)
	return nil
}

func (e *LedgerEngine) chargeback(account *domain.Account, rec domain.Record) error {
	entry, err := e.lookupEntry(account, rec)
	if err != nil {
		return err
	}

	if err := account.Reverse(entry.Amount); err != nil {
		return err
	}
	entry.Transition(domain.KindChargeback)

	e.countDispute(metrics.DisputeChargedBack)
	if e.metrics != nil {
		e.metrics.AccountsLocked.Inc()
	}
	return nil
}

// validateMovement runs the checks shared by deposits and withdrawals.
func (e *LedgerEngine) validateMovement(account *domain.Account, rec domain.Record) (decimal.Decimal, error) {
	if e.entryRepo.Exists(rec.TxID) {
		return decimal.Zero, fmt.Errorf("%w: tx %d", domain.ErrDuplicateTransaction, rec.TxID)
	}

	if rec.Amount == nil {
		return decimal.Zero, domain.ErrMissingAmount
	}

	amount := *rec.Amount
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: got %s", domain.ErrInvalidAmount, amount)
	}

	if account.Locked {
		return decimal.Zero, domain.ErrAccountLocked
	}

	return amount, nil
}

// lookupEntry finds the entry a dispute action references and checks the
// action is allowed against it.
func (e *LedgerEngine) lookupEntry(account *domain.Account, rec domain.Record) (*domain.Entry, error) {
	entry, err := e.entryRepo.GetByID(rec.TxID)
	if err != nil {
		return nil, err
	}

	if err := entry.ValidateReference(rec.ClientID); err != nil {
		return nil, err
	}

	if err := entry.CanTransition(rec.Kind); err != nil {
		return nil, err
	}

	if account.Locked {
		return nil, domain.ErrAccountLocked
	}

	return entry, nil
}

func (e *LedgerEngine) storeEntry(rec domain.Record, amount decimal.Decimal) error {
	if err := e.entryRepo.Create(domain.NewEntry(rec, amount)); err != nil {
		// Duplicates were checked before the account moved.
		return fmt.Errorf("%w: %v", domain.ErrInvariantViolation, err)
	}
	return nil
}

func (e *LedgerEngine) reject(rec domain.Record, err error) {
	category := domain.Categorize(err)
	e.errors = append(e.errors, domain.ErrorRecord{
		Line:     rec.Line,
		Kind:     rec.Kind,
		ClientID: rec.ClientID,
		TxID:     rec.TxID,
		Category: category,
		Err:      err,
	})

	if e.metrics != nil {
		e.metrics.RecordsRejected.WithLabelValues(rec.Kind.String(), string(category)).Inc()
	}
}

func (e *LedgerEngine) countDispute(outcome string) {
	if e.metrics != nil {
		e.metrics.Disputes.WithLabelValues(outcome).Inc()
	}
}
