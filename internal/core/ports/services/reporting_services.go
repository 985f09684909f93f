package services

import (
	"context"

	"github.com/tradelens/barter_ledger/internal/core/domain"
)

// ReportingSvcFacade produces period statistics and counterparty-grouped tax
// reporting summaries over a company's barter ledger.
type ReportingSvcFacade interface {
	Statistics(ctx context.Context, companyID string, taxYear int) (*domain.BarterStatistics, error)
	TaxSummary(ctx context.Context, companyID string, taxYear int) (*domain.BarterTaxSummary, error)
}
