package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event topics emitted by the ledger engine.
const (
	TopicBarterPosted = "barter.posted"
	TopicBarterVoided = "barter.voided"
)

// BarterEvent is published when a barter transaction is posted or voided.
// Publishing is best-effort and never blocks the ledger write.
type BarterEvent struct {
	BarterID          string          `json:"barter_id"`
	CompanyID         string          `json:"company_id"`
	TransactionNumber string          `json:"transaction_number"`
	ReceivedFMV       decimal.Decimal `json:"received_fmv"`
	ProvidedFMV       decimal.Decimal `json:"provided_fmv"`
	TaxYear           int             `json:"tax_year"`
	DeviceID          string          `json:"device_id"`
	OccurredAt        time.Time       `json:"occurred_at"`
}
