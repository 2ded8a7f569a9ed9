package memory

import (
	"fmt"

	"github.com/iho/payengine/internal/domain"
)

// EntryRepository implements usecase.EntryRepository in memory.
type EntryRepository struct {
	entries map[domain.TxID]*domain.Entry
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository() *EntryRepository {
	return &EntryRepository{
		entries: make(map[domain.TxID]*domain.Entry),
	}
}

// Create stores a new entry; transaction ids are unique.
func (r *EntryRepository) Create(entry *domain.Entry) error {
	if _, ok := r.entries[entry.TxID]; ok {
		return fmt.Errorf("%w: tx %d", domain.ErrDuplicateTransaction, entry.TxID)
	}
	r.entries[entry.TxID] = entry
	return nil
}

// GetByID retrieves an entry by transaction id.
func (r *EntryRepository) GetByID(txID domain.TxID) (*domain.Entry, error) {
	entry, ok := r.entries[txID]
	if !ok {
		return nil, fmt.Errorf("%w: tx %d", domain.ErrTransactionNotFound, txID)
	}
	return entry, nil
}

// Exists reports whether txID has been recorded.
func (r *EntryRepository) Exists(txID domain.TxID) bool {
	_, ok := r.entries[txID]
	return ok
}

// Range calls fn for every entry, in no particular order, until fn returns false.
func (r *EntryRepository) Range(fn func(entry *domain.Entry) bool) {
	for _, entry := range r.entries {
		if !fn(entry) {
			return
		}
	}
}
