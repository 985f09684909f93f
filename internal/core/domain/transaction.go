package domain

import "time"

// TransactionType enumerates the kinds of ledger transactions.
type TransactionType string

const (
	TypeJournalEntry TransactionType = "JOURNAL_ENTRY"
	TypeBarter       TransactionType = "BARTER"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	Draft  TransactionStatus = "DRAFT"
	Posted TransactionStatus = "POSTED"
	Void   TransactionStatus = "VOID"
)

// statusTransitions is the closed transition table: DRAFT -> POSTED or VOID,
// POSTED -> VOID, VOID is terminal.
var statusTransitions = map[TransactionStatus][]TransactionStatus{
	Draft:  {Posted, Void},
	Posted: {Void},
	Void:   {},
}

// CanTransitionTo reports whether moving from s to target is a legal
// lifecycle transition.
func (s TransactionStatus) CanTransitionTo(target TransactionStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsMutable reports whether record fields may still be edited.
func (s TransactionStatus) IsMutable() bool {
	return s == Draft
}

// Transaction is an economic event header. Records are immutable by
// convention once posted and are never physically deleted; DeletedAt marks
// soft deletion.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`     // Primary Key (UUID)
	CompanyID         string            `json:"companyID"`         // Owning company
	TransactionNumber string            `json:"transactionNumber"` // e.g. JE-2026-00042, scoped by company + tax year + type
	TransactionDate   time.Time         `json:"transactionDate"`
	TransactionType   TransactionType   `json:"transactionType"`
	Status            TransactionStatus `json:"status"`
	Description       string            `json:"description"`
	Reference         string            `json:"reference"`
	Memo              string            `json:"memo"`
	Attachments       []string          `json:"attachments"`
	DeletedAt         *time.Time        `json:"deletedAt,omitempty"`
	Version           VersionVector     `json:"version"`
	AuditFields

	// LineItems is populated when the transaction is read as an aggregate.
	LineItems []TransactionLineItem `json:"lineItems,omitempty"`
}
