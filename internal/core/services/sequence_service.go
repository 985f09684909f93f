package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tradelens/barter_ledger/internal/core/domain"
	portsrepo "github.com/tradelens/barter_ledger/internal/core/ports/repositories"
	portssvc "github.com/tradelens/barter_ledger/internal/core/ports/services"
)

// sequenceService allocates human-readable transaction numbers from an
// atomic per (company, type, tax year) counter. The counter row is reserved
// inside the caller's database transaction, so an aborted batch write rolls
// the reservation back with it.
type sequenceService struct {
	BaseService
	sequenceRepo portsrepo.SequenceRepository
}

// NewSequenceService creates a new SequenceService.
func NewSequenceService(sequenceRepo portsrepo.SequenceRepository) portssvc.SequenceSvcFacade {
	return &sequenceService{sequenceRepo: sequenceRepo}
}

var _ portssvc.SequenceSvcFacade = (*sequenceService)(nil)

// numberPrefix maps a transaction type onto the human-readable prefix used
// in transaction numbers.
func numberPrefix(txType domain.TransactionType) string {
	switch txType {
	case domain.TypeBarter:
		return "BRT"
	case domain.TypeJournalEntry:
		return "JE"
	default:
		return "TXN"
	}
}

// FormatTransactionNumber renders a reserved sequence value into the public
// transaction number, e.g. BRT-2026-00007.
func FormatTransactionNumber(txType domain.TransactionType, taxYear int, value int64) string {
	return fmt.Sprintf("%s-%d-%05d", numberPrefix(txType), taxYear, value)
}

// NextTransactionNumber reserves the next sequence value and formats it.
func (s *sequenceService) NextTransactionNumber(ctx context.Context, tx pgx.Tx, companyID string, txType domain.TransactionType, taxYear int) (string, error) {
	value, err := s.sequenceRepo.NextValue(ctx, tx, companyID, txType, taxYear)
	if err != nil {
		return "", fmt.Errorf("failed to reserve sequence for %s/%d: %w", txType, taxYear, err)
	}
	return FormatTransactionNumber(txType, taxYear, value), nil
}
