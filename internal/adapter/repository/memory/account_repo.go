package memory

import (
	"github.com/iho/payengine/internal/domain"
)

// AccountRepository implements usecase.AccountRepository in memory,
// remembering the order in which clients first appeared.
type AccountRepository struct {
	accounts map[domain.ClientID]*domain.Account
	order    []domain.ClientID
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[domain.ClientID]*domain.Account),
	}
}

// GetOrCreate returns the account for clientID, creating an empty one first if needed.
func (r *AccountRepository) GetOrCreate(clientID domain.ClientID) (*domain.Account, bool) {
	if acc, ok := r.accounts[clientID]; ok {
		return acc, false
	}

	acc := domain.NewAccount(clientID)
	r.accounts[clientID] = acc
	r.order = append(r.order, clientID)
	return acc, true
}

// List returns accounts in order of first appearance.
func (r *AccountRepository) List() []*domain.Account {
	accounts := make([]*domain.Account, 0, len(r.order))
	for _, id := range r.order {
		accounts = append(accounts, r.accounts[id])
	}
	return accounts
}
