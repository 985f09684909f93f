package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tradelens/barter_ledger/internal/core/domain"
)

// SequenceSvcFacade allocates human-readable transaction numbers, scoped per
// company per tax year per transaction type. Allocation joins the caller's
// database transaction so a rolled-back batch never burns a visible number
// out of order with its records.
type SequenceSvcFacade interface {
	NextTransactionNumber(ctx context.Context, tx pgx.Tx, companyID string, txType domain.TransactionType, taxYear int) (string, error)
}
