package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tradelens/barter_ledger/internal/core/domain"
)

// ClearingAccountSvcFacade resolves the company's barter clearing account,
// creating it on first use. The account balances transactions that have no
// natural cash leg.
type ClearingAccountSvcFacade interface {
	ResolveClearingAccount(ctx context.Context, tx pgx.Tx, companyID, deviceID string) (*domain.Account, error)
}
