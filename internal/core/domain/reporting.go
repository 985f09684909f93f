package domain

import (
	"github.com/shopspring/decimal"
)

// BarterStatistics aggregates a company's barter activity for one tax year.
type BarterStatistics struct {
	CompanyID       string                    `json:"companyID"`
	TaxYear         int                       `json:"taxYear"`
	TotalCount      int                       `json:"totalCount"`
	TotalIncomeFMV  decimal.Decimal           `json:"totalIncomeFMV"`  // Sum of received FMV, VOID excluded
	TotalExpenseFMV decimal.Decimal           `json:"totalExpenseFMV"` // Sum of provided FMV, VOID excluded
	CountByStatus   map[TransactionStatus]int `json:"countByStatus"`
	CountByMonth    map[string]int            `json:"countByMonth"` // Keyed YYYY-MM
	ReportableCount int                       `json:"reportableCount"`
}

// CounterpartyTaxDetail is the per-counterparty section of a tax summary.
type CounterpartyTaxDetail struct {
	ContactID        string              `json:"contactID"`
	Name             string              `json:"name"`
	TaxID            string              `json:"taxID"`
	Address          string              `json:"address"`
	TotalFMVReceived decimal.Decimal     `json:"totalFMVReceived"`
	TransactionCount int                 `json:"transactionCount"`
	Transactions     []BarterTransaction `json:"transactions"`
}

// BarterTaxSummary groups a year's reportable barter income by counterparty.
type BarterTaxSummary struct {
	CompanyID          string                  `json:"companyID"`
	TaxYear            int                     `json:"taxYear"`
	TotalReportableFMV decimal.Decimal         `json:"totalReportableFMV"`
	Counterparties     []CounterpartyTaxDetail `json:"counterparties"`
}
