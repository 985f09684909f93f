package services_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradelens/barter_ledger/internal/core/domain"
	portsrepo "github.com/tradelens/barter_ledger/internal/core/ports/repositories"
	"github.com/tradelens/barter_ledger/internal/core/services"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	MockAccountReader
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) EnsureAccount(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, tx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func TestResolveClearingAccount_CreatesSystemAsset(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := services.NewClearingAccountService(repo)
	ctx := context.Background()

	repo.On("EnsureAccount", ctx, mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == domain.BarterClearingAccountName &&
			a.AccountNumber == domain.BarterClearingAccountNumber &&
			a.AccountType == domain.Asset &&
			a.IsSystem && a.IsActive &&
			a.Balance.IsZero()
	})).Return(&domain.Account{AccountID: "acc-clearing", CompanyID: "comp-1"}, nil)

	account, err := svc.ResolveClearingAccount(ctx, nil, "comp-1", "device-a")

	require.NoError(t, err)
	assert.Equal(t, "acc-clearing", account.AccountID)
	repo.AssertExpectations(t)
}

func TestResolveClearingAccount_ReturnsExisting(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := services.NewClearingAccountService(repo)
	ctx := context.Background()

	existing := &domain.Account{AccountID: "acc-existing", CompanyID: "comp-1", IsSystem: true}
	repo.On("EnsureAccount", ctx, mock.Anything, mock.Anything).Return(existing, nil)

	account, err := svc.ResolveClearingAccount(ctx, nil, "comp-1", "device-a")

	require.NoError(t, err)
	assert.Equal(t, "acc-existing", account.AccountID)
}

func TestResolveClearingAccount_RepositoryError(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := services.NewClearingAccountService(repo)
	ctx := context.Background()

	repo.On("EnsureAccount", ctx, mock.Anything, mock.Anything).Return(nil, assert.AnError)

	account, err := svc.ResolveClearingAccount(ctx, nil, "comp-1", "device-a")

	require.Error(t, err)
	assert.Nil(t, account)
}
