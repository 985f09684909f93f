package dto

import (
	"github.com/tradelens/barter_ledger/internal/core/domain"
)

// BarterStatisticsResponse serializes period statistics with decimal strings.
type BarterStatisticsResponse struct {
	CompanyID       string         `json:"companyID"`
	TaxYear         int            `json:"taxYear"`
	TotalCount      int            `json:"totalCount"`
	TotalIncomeFMV  string         `json:"totalIncomeFMV"`
	TotalExpenseFMV string         `json:"totalExpenseFMV"`
	CountByStatus   map[string]int `json:"countByStatus"`
	CountByMonth    map[string]int `json:"countByMonth"`
	ReportableCount int            `json:"reportableCount"`
}

// CounterpartyTaxDetailResponse is one counterparty's tax summary section.
type CounterpartyTaxDetailResponse struct {
	ContactID        string           `json:"contactID"`
	Name             string           `json:"name"`
	TaxID            string           `json:"taxID"`
	Address          string           `json:"address"`
	TotalFMVReceived string           `json:"totalFMVReceived"`
	TransactionCount int              `json:"transactionCount"`
	Transactions     []BarterResponse `json:"transactions"`
}

// BarterTaxSummaryResponse serializes the counterparty-grouped tax summary.
type BarterTaxSummaryResponse struct {
	CompanyID          string                          `json:"companyID"`
	TaxYear            int                             `json:"taxYear"`
	TotalReportableFMV string                          `json:"totalReportableFMV"`
	Counterparties     []CounterpartyTaxDetailResponse `json:"counterparties"`
}

// ToBarterStatisticsResponse converts domain statistics to the DTO.
func ToBarterStatisticsResponse(s *domain.BarterStatistics) BarterStatisticsResponse {
	byStatus := make(map[string]int, len(s.CountByStatus))
	for status, count := range s.CountByStatus {
		byStatus[string(status)] = count
	}
	return BarterStatisticsResponse{
		CompanyID:       s.CompanyID,
		TaxYear:         s.TaxYear,
		TotalCount:      s.TotalCount,
		TotalIncomeFMV:  s.TotalIncomeFMV.StringFixed(2),
		TotalExpenseFMV: s.TotalExpenseFMV.StringFixed(2),
		CountByStatus:   byStatus,
		CountByMonth:    s.CountByMonth,
		ReportableCount: s.ReportableCount,
	}
}

// ToBarterTaxSummaryResponse converts the domain tax summary to the DTO.
func ToBarterTaxSummaryResponse(s *domain.BarterTaxSummary) BarterTaxSummaryResponse {
	counterparties := make([]CounterpartyTaxDetailResponse, len(s.Counterparties))
	for i, c := range s.Counterparties {
		counterparties[i] = CounterpartyTaxDetailResponse{
			ContactID:        c.ContactID,
			Name:             c.Name,
			TaxID:            c.TaxID,
			Address:          c.Address,
			TotalFMVReceived: c.TotalFMVReceived.StringFixed(2),
			TransactionCount: c.TransactionCount,
			Transactions:     ToBarterResponses(c.Transactions),
		}
	}
	return BarterTaxSummaryResponse{
		CompanyID:          s.CompanyID,
		TaxYear:            s.TaxYear,
		TotalReportableFMV: s.TotalReportableFMV.StringFixed(2),
		Counterparties:     counterparties,
	}
}
