package domain

import "github.com/shopspring/decimal"

// TransactionLineItem is one leg of a journal entry, owned by exactly one
// transaction. Debit and credit are both non-negative; the engine writes
// exactly one nonzero side per line, though the model does not enforce that
// at line level. The system-level invariant is that per transaction
// sum(debit) == sum(credit), exactly, in decimal arithmetic.
type TransactionLineItem struct {
	LineItemID    string          `json:"lineItemID"`    // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> Transaction
	AccountID     string          `json:"accountID"`     // FK -> Account
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	ContactID     *string         `json:"contactID,omitempty"` // Optional counterparty
	ProductID     *string         `json:"productID,omitempty"` // Optional linked product
	AuditFields
}
