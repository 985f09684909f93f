package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradelens/barter_ledger/internal/core/domain"
	portsrepo "github.com/tradelens/barter_ledger/internal/core/ports/repositories"
)

// PgxContactRepository provides read access to the contact directory.
type PgxContactRepository struct {
	baseRepository
}

// NewPgxContactRepository creates a new repository for contact data.
func NewPgxContactRepository(pool *pgxpool.Pool) portsrepo.ContactReader {
	return &PgxContactRepository{baseRepository{pool: pool}}
}

var _ portsrepo.ContactReader = (*PgxContactRepository)(nil)

// FindContactsByIDs retrieves contacts keyed by contact ID. Missing IDs are
// simply absent from the map.
func (r *PgxContactRepository) FindContactsByIDs(ctx context.Context, companyID string, contactIDs []string) (map[string]domain.Contact, error) {
	query := `
		SELECT contact_id, company_id, name, tax_id, address
		FROM contacts
		WHERE company_id = $1 AND contact_id = ANY($2);
	`
	rows, err := r.pool.Query(ctx, query, companyID, contactIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find contacts by IDs: %w", err)
	}
	defer rows.Close()

	contacts := make(map[string]domain.Contact, len(contactIDs))
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ContactID, &c.CompanyID, &c.Name, &c.TaxID, &c.Address); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts[c.ContactID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating contact rows: %w", err)
	}
	return contacts, nil
}
