package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradelens/barter_ledger/internal/core/domain"
	portsrepo "github.com/tradelens/barter_ledger/internal/core/ports/repositories"
)

// PgxSequenceRepository reserves transaction sequence numbers from a
// single-row counter per (company, type, tax year).
type PgxSequenceRepository struct {
	baseRepository
}

// NewPgxSequenceRepository creates a new repository for sequence counters.
func NewPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{baseRepository{pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextValue increments and returns the counter in a single upsert statement.
// Concurrent writers serialize on the counter row, so no two callers ever
// observe the same value; rolling back the enclosing transaction releases
// the reservation.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, tx pgx.Tx, companyID string, txType domain.TransactionType, taxYear int) (int64, error) {
	query := `
		INSERT INTO transaction_sequences (company_id, transaction_type, tax_year, current_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, transaction_type, tax_year)
		DO UPDATE SET current_value = transaction_sequences.current_value + 1
		RETURNING current_value;
	`
	var value int64
	if err := r.querierFor(tx).QueryRow(ctx, query, companyID, txType, taxYear).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to reserve sequence value for %s/%s/%d: %w", companyID, txType, taxYear, err)
	}
	return value, nil
}
