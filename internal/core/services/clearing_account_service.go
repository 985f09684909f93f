package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tradelens/barter_ledger/internal/core/domain"
	portsrepo "github.com/tradelens/barter_ledger/internal/core/ports/repositories"
	portssvc "github.com/tradelens/barter_ledger/internal/core/ports/services"
)

// clearingAccountService lazily provisions the company-wide barter clearing
// account. Idempotency is delegated to the storage layer's uniqueness
// constraint rather than a look-then-insert race.
type clearingAccountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewClearingAccountService creates a new ClearingAccountService.
func NewClearingAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.ClearingAccountSvcFacade {
	return &clearingAccountService{accountRepo: accountRepo}
}

var _ portssvc.ClearingAccountSvcFacade = (*clearingAccountService)(nil)

// ResolveClearingAccount returns the company's barter clearing account,
// creating it on first use. The account is an asset with a fixed number and
// is system-owned; users cannot pick it directly.
func (s *clearingAccountService) ResolveClearingAccount(ctx context.Context, tx pgx.Tx, companyID, deviceID string) (*domain.Account, error) {
	now := time.Now().UTC()
	candidate := domain.Account{
		AccountID:     uuid.NewString(),
		CompanyID:     companyID,
		Name:          domain.BarterClearingAccountName,
		AccountNumber: domain.BarterClearingAccountNumber,
		AccountType:   domain.Asset,
		Description:   "System-managed clearing account for barter transactions",
		IsSystem:      true,
		IsActive:      true,
		Balance:       decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     deviceID,
			LastUpdatedAt: now,
			LastUpdatedBy: deviceID,
		},
	}

	account, err := s.accountRepo.EnsureAccount(ctx, tx, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve clearing account for company %s: %w", companyID, err)
	}

	if account.AccountID == candidate.AccountID {
		s.LogInfo(ctx, "Barter clearing account created",
			slog.String("company_id", companyID),
			slog.String("account_id", account.AccountID))
	}
	return account, nil
}
