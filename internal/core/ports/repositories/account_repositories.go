package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tradelens/barter_ledger/internal/core/domain"
)

// AccountReader defines read-only access to the chart of accounts.
type AccountReader interface {
	// FindAccountByID retrieves a single account.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves several accounts keyed by account ID.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)
}

// AccountWriter defines the single write the ledger engine performs against
// the chart of accounts: lazily creating the clearing account.
type AccountWriter interface {
	// EnsureAccount inserts the account if no account with the same company
	// and name exists, then returns the stored row. Idempotency is enforced
	// by a storage-level uniqueness constraint, not look-then-insert.
	EnsureAccount(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, error)
}

// AccountRepositoryFacade combines chart-of-accounts repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
