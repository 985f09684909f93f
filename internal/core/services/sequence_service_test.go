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

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepository = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) NextValue(ctx context.Context, tx pgx.Tx, companyID string, txType domain.TransactionType, taxYear int) (int64, error) {
	args := m.Called(ctx, tx, companyID, txType, taxYear)
	return args.Get(0).(int64), args.Error(1)
}

func TestNextTransactionNumber_Formatting(t *testing.T) {
	repo := new(MockSequenceRepository)
	svc := services.NewSequenceService(repo)
	ctx := context.Background()

	repo.On("NextValue", ctx, mock.Anything, "comp-1", domain.TypeBarter, 2026).Return(int64(7), nil).Once()
	repo.On("NextValue", ctx, mock.Anything, "comp-1", domain.TypeJournalEntry, 2026).Return(int64(123), nil).Once()

	number, err := svc.NextTransactionNumber(ctx, nil, "comp-1", domain.TypeBarter, 2026)
	require.NoError(t, err)
	assert.Equal(t, "BRT-2026-00007", number)

	number, err = svc.NextTransactionNumber(ctx, nil, "comp-1", domain.TypeJournalEntry, 2026)
	require.NoError(t, err)
	assert.Equal(t, "JE-2026-00123", number)
}

func TestNextTransactionNumber_IndependentScopes(t *testing.T) {
	// Counters per (company, type, year) are independent; the same ordinal can
	// appear in each scope.
	repo := new(MockSequenceRepository)
	svc := services.NewSequenceService(repo)
	ctx := context.Background()

	repo.On("NextValue", ctx, mock.Anything, "comp-1", domain.TypeBarter, 2025).Return(int64(1), nil).Once()
	repo.On("NextValue", ctx, mock.Anything, "comp-1", domain.TypeBarter, 2026).Return(int64(1), nil).Once()

	a, err := svc.NextTransactionNumber(ctx, nil, "comp-1", domain.TypeBarter, 2025)
	require.NoError(t, err)
	b, err := svc.NextTransactionNumber(ctx, nil, "comp-1", domain.TypeBarter, 2026)
	require.NoError(t, err)
	assert.Equal(t, "BRT-2025-00001", a)
	assert.Equal(t, "BRT-2026-00001", b)
}

func TestNextTransactionNumber_RepositoryError(t *testing.T) {
	repo := new(MockSequenceRepository)
	svc := services.NewSequenceService(repo)
	ctx := context.Background()

	repo.On("NextValue", ctx, mock.Anything, "comp-1", domain.TypeBarter, 2026).Return(int64(0), assert.AnError)

	number, err := svc.NextTransactionNumber(ctx, nil, "comp-1", domain.TypeBarter, 2026)
	require.Error(t, err)
	assert.Empty(t, number)
}
