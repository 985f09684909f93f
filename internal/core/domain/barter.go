package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FMVBasis enumerates how the fair market value of an exchange was determined.
type FMVBasis string

const (
	BasisAppraisal       FMVBasis = "APPRAISAL"
	BasisComparableSales FMVBasis = "COMPARABLE_SALES"
	BasisReplacementCost FMVBasis = "REPLACEMENT_COST"
	BasisExpertOpinion   FMVBasis = "EXPERT_OPINION"
	BasisOther           FMVBasis = "OTHER"
)

// ReportableThreshold is the received-FMV value at or above which a barter
// transaction becomes 1099-B reportable.
var ReportableThreshold = decimal.New(600, 0)

// BarterTransaction is a non-cash exchange. It is created atomically with two
// offsetting journal entries (income and expense side); all three share the
// same status and transition together.
type BarterTransaction struct {
	BarterID          string            `json:"barterID"` // Primary Key (UUID)
	CompanyID         string            `json:"companyID"`
	TransactionNumber string            `json:"transactionNumber"` // e.g. BRT-2026-00007
	TransactionDate   time.Time         `json:"transactionDate"`
	Status            TransactionStatus `json:"status"`

	ReceivedDescription string          `json:"goodsReceivedDescription"`
	ReceivedFMV         decimal.Decimal `json:"goodsReceivedFMV"`
	ProvidedDescription string          `json:"goodsProvidedDescription"`
	ProvidedFMV         decimal.Decimal `json:"goodsProvidedFMV"`

	FMVBasis         FMVBasis `json:"fmvBasis,omitempty"`
	FMVDocumentation []string `json:"fmvDocumentation,omitempty"`

	Is1099Reportable      bool    `json:"is1099Reportable"`
	TaxYear               int     `json:"taxYear"`
	CounterpartyContactID *string `json:"counterpartyContactID,omitempty"`

	IncomeAccountID  string `json:"incomeAccountID"`
	ExpenseAccountID string `json:"expenseAccountID"`
	IncomeEntryID    string `json:"incomeEntryID"`  // FK -> income-side journal entry
	ExpenseEntryID   string `json:"expenseEntryID"` // FK -> expense-side journal entry

	Reference   string        `json:"reference"`
	Memo        string        `json:"memo"`
	Attachments []string      `json:"attachments"`
	DeletedAt   *time.Time    `json:"deletedAt,omitempty"`
	Version     VersionVector `json:"version"`
	AuditFields
}

// BarterWithEntries is the hydrated aggregate returned by creation and reads:
// the barter header plus both offsetting journal entries with their line items.
type BarterWithEntries struct {
	Barter       BarterTransaction `json:"barter"`
	IncomeEntry  Transaction       `json:"incomeEntry"`
	ExpenseEntry Transaction       `json:"expenseEntry"`
}
