package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradelens/barter_ledger/internal/apperrors"
	"github.com/tradelens/barter_ledger/internal/core/domain"
	portsrepo "github.com/tradelens/barter_ledger/internal/core/ports/repositories"
)

// PgxAccountRepository provides access to the chart of accounts.
type PgxAccountRepository struct {
	baseRepository
}

// NewPgxAccountRepository creates a new repository for account data.
func NewPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{baseRepository{pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, company_id, name, account_number, account_type, description,
	is_system, is_active, balance, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID,
		&a.CompanyID,
		&a.Name,
		&a.AccountNumber,
		&a.AccountType,
		&a.Description,
		&a.IsSystem,
		&a.IsActive,
		&a.Balance,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindAccountByID retrieves a single account.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND account_id = $2;
	`
	account, err := scanAccount(r.pool.QueryRow(ctx, query, companyID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return account, nil
}

// FindAccountsByIDs retrieves several accounts keyed by account ID.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND account_id = ANY($2);
	`
	rows, err := r.pool.Query(ctx, query, companyID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts by IDs: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating account rows: %w", err)
	}
	return accounts, nil
}

// EnsureAccount inserts the account unless one with the same company and name
// already exists, then returns the stored row. The uniqueness constraint on
// (company_id, name) makes concurrent first-use creation safe.
func (r *PgxAccountRepository) EnsureAccount(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, error) {
	insertQuery := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id, name) DO NOTHING;
	`
	q := r.querierFor(tx)
	_, err := q.Exec(ctx, insertQuery,
		account.AccountID,
		account.CompanyID,
		account.Name,
		account.AccountNumber,
		account.AccountType,
		account.Description,
		account.IsSystem,
		account.IsActive,
		account.Balance,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure account %s: %w", account.Name, err)
	}

	selectQuery := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND name = $2;
	`
	stored, err := scanAccount(q.QueryRow(ctx, selectQuery, account.CompanyID, account.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to read back account %s: %w", account.Name, err)
	}
	return stored, nil
}
