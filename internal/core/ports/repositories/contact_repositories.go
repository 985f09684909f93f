package repositories

import (
	"context"

	"github.com/tradelens/barter_ledger/internal/core/domain"
)

// ContactReader defines read-only access to the contact directory, used to
// resolve counterparty display data for tax reporting.
type ContactReader interface {
	// FindContactsByIDs retrieves contacts keyed by contact ID. Missing IDs
	// are simply absent from the map.
	FindContactsByIDs(ctx context.Context, companyID string, contactIDs []string) (map[string]domain.Contact, error)
}
