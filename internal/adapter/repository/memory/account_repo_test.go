package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/usecase"
)

var _ usecase.AccountRepository = (*AccountRepository)(nil)

func TestAccountRepository_GetOrCreate(t *testing.T) {
	repo := NewAccountRepository()

	first, created := repo.GetOrCreate(5)
	require.True(t, created)
	assert.Equal(t, domain.ClientID(5), first.ClientID)
	assert.True(t, first.Total.IsZero())

	again, created := repo.GetOrCreate(5)
	assert.False(t, created)
	assert.Same(t, first, again)
}

func TestAccountRepository_ListKeepsFirstAppearanceOrder(t *testing.T) {
	repo := NewAccountRepository()
	for _, id := range []domain.ClientID{9, 2, 9, 400, 2, 1} {
		repo.GetOrCreate(id)
	}

	var ids []domain.ClientID
	for _, acc := range repo.List() {
		ids = append(ids, acc.ClientID)
	}

	assert.Equal(t, []domain.ClientID{9, 2, 400, 1}, ids)
}
