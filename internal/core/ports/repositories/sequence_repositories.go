package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tradelens/barter_ledger/internal/core/domain"
)

// SequenceRepository reserves transaction sequence numbers. NextValue must be
// atomic: a single-row counter per (company, type, tax year) is upserted and
// incremented in one statement so concurrent writers never observe the same
// value. Numbering starts at 1.
type SequenceRepository interface {
	NextValue(ctx context.Context, tx pgx.Tx, companyID string, txType domain.TransactionType, taxYear int) (int64, error)
}
