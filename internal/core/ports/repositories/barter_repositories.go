package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tradelens/barter_ledger/internal/core/domain"
)

// BarterReader defines read operations for barter transaction data.
type BarterReader interface {
	// FindBarterByID retrieves a non-deleted barter transaction by its ID.
	FindBarterByID(ctx context.Context, barterID string) (*domain.BarterTransaction, error)

	// ListBartersByCompany retrieves all non-deleted barter transactions for a
	// company, ordered by transaction date then transaction number. Filtering
	// happens in the service layer.
	ListBartersByCompany(ctx context.Context, companyID string) ([]domain.BarterTransaction, error)
}

// BarterWriter defines write operations for barter transaction data. Methods
// taking a pgx.Tx participate in a caller-managed database transaction.
type BarterWriter interface {
	// SaveBarterBatch persists the barter header plus both offsetting journal
	// entries (with their line items) as one batch inside tx.
	SaveBarterBatch(ctx context.Context, tx pgx.Tx, barter domain.BarterTransaction, income, expense domain.Transaction) error

	// UpdateBarter persists header field changes, status and version vector.
	UpdateBarter(ctx context.Context, tx pgx.Tx, barter domain.BarterTransaction) error
}

// EntryReader defines read operations for journal entry data.
type EntryReader interface {
	// FindEntryByID retrieves a journal entry with its line items.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Transaction, error)
}

// EntryWriter defines write operations for journal entry data.
type EntryWriter interface {
	// UpdateEntry persists entry status, memo and version vector changes.
	UpdateEntry(ctx context.Context, tx pgx.Tx, entry domain.Transaction) error

	// ReplaceEntryLineItems deletes an entry's line items and inserts the
	// given replacements. Used when a DRAFT barter's FMV changes.
	ReplaceEntryLineItems(ctx context.Context, tx pgx.Tx, entryID string, items []domain.TransactionLineItem) error
}

// BarterRepositoryFacade combines all barter-related repository interfaces.
type BarterRepositoryFacade interface {
	BarterReader
	BarterWriter
	EntryReader
	EntryWriter
}

// BarterRepositoryWithTx extends BarterRepositoryFacade with transaction
// management.
type BarterRepositoryWithTx interface {
	BarterRepositoryFacade
	TransactionManager
}
