package dto

import (
	"time"

	"github.com/tradelens/barter_ledger/internal/core/domain"
)

// Monetary values cross this boundary as base-10 decimal strings
// (e.g. "1000.00"), never binary floats.

// CreateBarterRequest is the contract for creating a barter transaction.
// FMV fields and descriptions are validated by the ledger validator so their
// failures come back as a ValidationError message list, not a binding error.
type CreateBarterRequest struct {
	CompanyID                string    `json:"companyID" binding:"required"`
	TransactionDate          time.Time `json:"transactionDate" binding:"required"`
	GoodsReceivedDescription string    `json:"goodsReceivedDescription"`
	GoodsReceivedFMV         string    `json:"goodsReceivedFMV" binding:"omitempty,decimalstr"`
	IncomeAccountID          string    `json:"incomeAccountID" binding:"required"`
	GoodsProvidedDescription string    `json:"goodsProvidedDescription"`
	GoodsProvidedFMV         string    `json:"goodsProvidedFMV" binding:"omitempty,decimalstr"`
	ExpenseAccountID         string    `json:"expenseAccountID" binding:"required"`
	FMVBasis                 string    `json:"fmvBasis"`
	FMVDocumentation         []string  `json:"fmvDocumentation"`
	CounterpartyContactID    *string   `json:"counterpartyContactID"`
	Reference                string    `json:"reference"`
	Memo                     string    `json:"memo"`
	Attachments              []string  `json:"attachments"`
}

// UpdateBarterRequest is a partial update of a DRAFT barter. Nil means the
// field is absent from the request, not cleared.
type UpdateBarterRequest struct {
	TransactionDate          *time.Time `json:"transactionDate"`
	GoodsReceivedDescription *string    `json:"goodsReceivedDescription"`
	GoodsReceivedFMV         *string    `json:"goodsReceivedFMV" binding:"omitempty,decimalstr"`
	GoodsProvidedDescription *string    `json:"goodsProvidedDescription"`
	GoodsProvidedFMV         *string    `json:"goodsProvidedFMV" binding:"omitempty,decimalstr"`
	FMVBasis                 *string    `json:"fmvBasis"`
	FMVDocumentation         []string   `json:"fmvDocumentation"`
	CounterpartyContactID    *string    `json:"counterpartyContactID"`
	Reference                *string    `json:"reference"`
	Memo                     *string    `json:"memo"`
	Attachments              []string   `json:"attachments"`

	// BaseVersion, when supplied, is the version vector the client last saw.
	// A stored vector concurrent with it means another device edited the
	// record in the meantime and the update is refused.
	BaseVersion domain.VersionVector `json:"baseVersion"`
}

// VoidBarterRequest carries the reason recorded in the memo audit trail.
type VoidBarterRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// QueryBartersRequest filters a company's barter transactions.
type QueryBartersRequest struct {
	CompanyID             string                     `form:"companyID" binding:"required"`
	Statuses              []domain.TransactionStatus `form:"status"`
	DateFrom              *time.Time                 `form:"dateFrom" time_format:"2006-01-02"`
	DateTo                *time.Time                 `form:"dateTo" time_format:"2006-01-02"`
	TaxYear               *int                       `form:"taxYear"`
	Reportable            *bool                      `form:"reportable"`
	CounterpartyContactID *string                    `form:"counterpartyContactID"`
	SearchText            string                     `form:"search"`
	Offset                int                        `form:"offset"`
	Limit                 int                        `form:"limit"`
}

// LineItemResponse defines the data returned for a journal entry line.
type LineItemResponse struct {
	LineItemID string  `json:"lineItemID"`
	AccountID  string  `json:"accountID"`
	Debit      string  `json:"debit"`
	Credit     string  `json:"credit"`
	ContactID  *string `json:"contactID,omitempty"`
	ProductID  *string `json:"productID,omitempty"`
}

// EntryResponse defines the data returned for an offsetting journal entry.
type EntryResponse struct {
	TransactionID     string                   `json:"transactionID"`
	TransactionNumber string                   `json:"transactionNumber"`
	TransactionDate   time.Time                `json:"transactionDate"`
	Status            domain.TransactionStatus `json:"status"`
	Description       string                   `json:"description"`
	Version           domain.VersionVector     `json:"version"`
	LineItems         []LineItemResponse       `json:"lineItems"`
}

// BarterResponse defines the data returned for a barter transaction header.
type BarterResponse struct {
	BarterID                 string                   `json:"barterID"`
	CompanyID                string                   `json:"companyID"`
	TransactionNumber        string                   `json:"transactionNumber"`
	TransactionDate          time.Time                `json:"transactionDate"`
	Status                   domain.TransactionStatus `json:"status"`
	GoodsReceivedDescription string                   `json:"goodsReceivedDescription"`
	GoodsReceivedFMV         string                   `json:"goodsReceivedFMV"`
	GoodsProvidedDescription string                   `json:"goodsProvidedDescription"`
	GoodsProvidedFMV         string                   `json:"goodsProvidedFMV"`
	FMVBasis                 string                   `json:"fmvBasis,omitempty"`
	FMVDocumentation         []string                 `json:"fmvDocumentation,omitempty"`
	Is1099Reportable         bool                     `json:"is1099Reportable"`
	TaxYear                  int                      `json:"taxYear"`
	CounterpartyContactID    *string                  `json:"counterpartyContactID,omitempty"`
	IncomeEntryID            string                   `json:"incomeEntryID"`
	ExpenseEntryID           string                   `json:"expenseEntryID"`
	Reference                string                   `json:"reference,omitempty"`
	Memo                     string                   `json:"memo,omitempty"`
	Attachments              []string                 `json:"attachments,omitempty"`
	Version                  domain.VersionVector     `json:"version"`
	CreatedAt                time.Time                `json:"createdAt"`
}

// BarterWithEntriesResponse is the hydrated aggregate returned by create/get.
type BarterWithEntriesResponse struct {
	Barter       BarterResponse `json:"barter"`
	IncomeEntry  EntryResponse  `json:"incomeEntry"`
	ExpenseEntry EntryResponse  `json:"expenseEntry"`
	Warnings     []string       `json:"warnings,omitempty"`
}

// QueryBartersResponse is the paginated list result.
type QueryBartersResponse struct {
	Barters []BarterResponse `json:"barters"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
	Count   int              `json:"count"`
}

// ToLineItemResponse converts a domain line item to its DTO.
func ToLineItemResponse(li *domain.TransactionLineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID: li.LineItemID,
		AccountID:  li.AccountID,
		Debit:      li.Debit.StringFixed(2),
		Credit:     li.Credit.StringFixed(2),
		ContactID:  li.ContactID,
		ProductID:  li.ProductID,
	}
}

// ToEntryResponse converts a domain journal entry to its DTO.
func ToEntryResponse(t *domain.Transaction) EntryResponse {
	lines := make([]LineItemResponse, len(t.LineItems))
	for i := range t.LineItems {
		lines[i] = ToLineItemResponse(&t.LineItems[i])
	}
	return EntryResponse{
		TransactionID:     t.TransactionID,
		TransactionNumber: t.TransactionNumber,
		TransactionDate:   t.TransactionDate,
		Status:            t.Status,
		Description:       t.Description,
		Version:           t.Version,
		LineItems:         lines,
	}
}

// ToBarterResponse converts a domain barter header to its DTO.
func ToBarterResponse(b *domain.BarterTransaction) BarterResponse {
	return BarterResponse{
		BarterID:                 b.BarterID,
		CompanyID:                b.CompanyID,
		TransactionNumber:        b.TransactionNumber,
		TransactionDate:          b.TransactionDate,
		Status:                   b.Status,
		GoodsReceivedDescription: b.ReceivedDescription,
		GoodsReceivedFMV:         b.ReceivedFMV.StringFixed(2),
		GoodsProvidedDescription: b.ProvidedDescription,
		GoodsProvidedFMV:         b.ProvidedFMV.StringFixed(2),
		FMVBasis:                 string(b.FMVBasis),
		FMVDocumentation:         b.FMVDocumentation,
		Is1099Reportable:         b.Is1099Reportable,
		TaxYear:                  b.TaxYear,
		CounterpartyContactID:    b.CounterpartyContactID,
		IncomeEntryID:            b.IncomeEntryID,
		ExpenseEntryID:           b.ExpenseEntryID,
		Reference:                b.Reference,
		Memo:                     b.Memo,
		Attachments:              b.Attachments,
		Version:                  b.Version,
		CreatedAt:                b.CreatedAt,
	}
}

// ToBarterWithEntriesResponse converts the hydrated aggregate.
func ToBarterWithEntriesResponse(agg *domain.BarterWithEntries, warnings []string) BarterWithEntriesResponse {
	return BarterWithEntriesResponse{
		Barter:       ToBarterResponse(&agg.Barter),
		IncomeEntry:  ToEntryResponse(&agg.IncomeEntry),
		ExpenseEntry: ToEntryResponse(&agg.ExpenseEntry),
		Warnings:     warnings,
	}
}

// ToBarterResponses converts a slice of domain barters.
func ToBarterResponses(barters []domain.BarterTransaction) []BarterResponse {
	responses := make([]BarterResponse, len(barters))
	for i := range barters {
		responses[i] = ToBarterResponse(&barters[i])
	}
	return responses
}
