package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tradelens/barter_ledger/internal/core/domain"
	portsrepo "github.com/tradelens/barter_ledger/internal/core/ports/repositories"
	portssvc "github.com/tradelens/barter_ledger/internal/core/ports/services"
)

// reportingService computes period statistics and tax summaries over the
// barter ledger. Aggregation runs on exact decimals; voided transactions
// stay visible in counts but never contribute to FMV totals.
type reportingService struct {
	BaseService
	barterRepo  portsrepo.BarterReader
	contactRepo portsrepo.ContactReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(barterRepo portsrepo.BarterReader, contactRepo portsrepo.ContactReader) portssvc.ReportingSvcFacade {
	return &reportingService{barterRepo: barterRepo, contactRepo: contactRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Statistics aggregates a company's barter activity for one tax year.
func (s *reportingService) Statistics(ctx context.Context, companyID string, taxYear int) (*domain.BarterStatistics, error) {
	barters, err := s.barterRepo.ListBartersByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list barters for company %s: %w", companyID, err)
	}

	stats := &domain.BarterStatistics{
		CompanyID:       companyID,
		TaxYear:         taxYear,
		TotalIncomeFMV:  decimal.Zero,
		TotalExpenseFMV: decimal.Zero,
		CountByStatus:   make(map[domain.TransactionStatus]int),
		CountByMonth:    make(map[string]int),
	}

	for _, b := range barters {
		if b.TaxYear != taxYear {
			continue
		}
		stats.TotalCount++
		stats.CountByStatus[b.Status]++
		stats.CountByMonth[b.TransactionDate.Format("2006-01")]++
		if b.Status == domain.Void {
			continue
		}
		stats.TotalIncomeFMV = stats.TotalIncomeFMV.Add(b.ReceivedFMV)
		stats.TotalExpenseFMV = stats.TotalExpenseFMV.Add(b.ProvidedFMV)
		if b.Is1099Reportable {
			stats.ReportableCount++
		}
	}
	return stats, nil
}

// TaxSummary groups a year's reportable, non-void barters that carry a
// counterparty by that counterparty and resolves contact display data.
func (s *reportingService) TaxSummary(ctx context.Context, companyID string, taxYear int) (*domain.BarterTaxSummary, error) {
	barters, err := s.barterRepo.ListBartersByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list barters for company %s: %w", companyID, err)
	}

	grouped := make(map[string][]domain.BarterTransaction)
	contactIDs := make([]string, 0)
	for _, b := range barters {
		if b.TaxYear != taxYear || !b.Is1099Reportable || b.Status == domain.Void {
			continue
		}
		if b.CounterpartyContactID == nil {
			continue
		}
		id := *b.CounterpartyContactID
		if _, seen := grouped[id]; !seen {
			contactIDs = append(contactIDs, id)
		}
		grouped[id] = append(grouped[id], b)
	}

	contacts := map[string]domain.Contact{}
	if len(contactIDs) > 0 {
		contacts, err = s.contactRepo.FindContactsByIDs(ctx, companyID, contactIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve counterparty contacts: %w", err)
		}
	}

	summary := &domain.BarterTaxSummary{
		CompanyID:          companyID,
		TaxYear:            taxYear,
		TotalReportableFMV: decimal.Zero,
		Counterparties:     make([]domain.CounterpartyTaxDetail, 0, len(contactIDs)),
	}

	for _, id := range contactIDs {
		transactions := grouped[id]
		total := decimal.Zero
		for _, b := range transactions {
			total = total.Add(b.ReceivedFMV)
		}

		detail := domain.CounterpartyTaxDetail{
			ContactID:        id,
			TotalFMVReceived: total,
			TransactionCount: len(transactions),
			Transactions:     transactions,
		}
		if contact, ok := contacts[id]; ok {
			detail.Name = contact.Name
			detail.TaxID = contact.TaxID
			detail.Address = contact.Address
		} else {
			s.LogWarn(ctx, "Counterparty contact not found for tax summary",
				slog.String("company_id", companyID),
				slog.String("contact_id", id))
		}
		summary.Counterparties = append(summary.Counterparties, detail)
		summary.TotalReportableFMV = summary.TotalReportableFMV.Add(total)
	}

	sort.Slice(summary.Counterparties, func(i, j int) bool {
		return summary.Counterparties[i].Name < summary.Counterparties[j].Name
	})
	return summary, nil
}
