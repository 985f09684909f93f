package services

import (
	"context"

	"github.com/tradelens/barter_ledger/internal/core/domain"
	"github.com/tradelens/barter_ledger/internal/dto"
)

// BarterSvcFacade is the ledger engine's contract with its collaborators
// (UI layer, billing, wizards). Mutating operations carry the acting device
// identifier for version vector bookkeeping.
type BarterSvcFacade interface {
	// CreateBarter validates the exchange and atomically creates the barter
	// header plus two offsetting journal entries. Returns the hydrated
	// aggregate and any non-blocking warnings.
	CreateBarter(ctx context.Context, req dto.CreateBarterRequest, deviceID string) (*domain.BarterWithEntries, []string, error)

	// GetBarterByID returns the hydrated aggregate for a non-deleted barter.
	GetBarterByID(ctx context.Context, barterID string) (*domain.BarterWithEntries, error)

	// UpdateBarter applies a partial update to a DRAFT barter. FMV changes
	// rebuild the child entries' line items. Returns warnings alongside the
	// updated header.
	UpdateBarter(ctx context.Context, barterID string, req dto.UpdateBarterRequest, deviceID string) (*domain.BarterTransaction, []string, error)

	// PostBarter finalizes a DRAFT barter and both child entries.
	PostBarter(ctx context.Context, barterID, deviceID string) (*domain.BarterTransaction, error)

	// VoidBarter voids a non-VOID barter and both child entries, appending
	// the reason to the memo audit trail.
	VoidBarter(ctx context.Context, barterID, deviceID, reason string) (*domain.BarterTransaction, error)

	// QueryBarters filters a company's barter transactions in memory and
	// applies offset/limit pagination after filtering.
	QueryBarters(ctx context.Context, req dto.QueryBartersRequest) ([]domain.BarterTransaction, error)
}
