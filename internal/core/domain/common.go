package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// The actor is the device identifier of the offline-capable client that
// performed the mutation.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // Device identifier
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // Device identifier
}
