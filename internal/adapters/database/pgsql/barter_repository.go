package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradelens/barter_ledger/internal/apperrors"
	"github.com/tradelens/barter_ledger/internal/core/domain"
	portsrepo "github.com/tradelens/barter_ledger/internal/core/ports/repositories"
)

// PgxBarterRepository persists barter headers, their offsetting journal
// entries and line items. Version vectors are stored as JSONB.
type PgxBarterRepository struct {
	baseRepository
}

// NewPgxBarterRepository creates a new repository for barter and journal
// entry data.
func NewPgxBarterRepository(pool *pgxpool.Pool) portsrepo.BarterRepositoryWithTx {
	return &PgxBarterRepository{baseRepository{pool: pool}}
}

var _ portsrepo.BarterRepositoryWithTx = (*PgxBarterRepository)(nil)

func marshalVersion(v domain.VersionVector) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal version vector: %w", err)
	}
	return data, nil
}

func unmarshalVersion(data []byte) (domain.VersionVector, error) {
	var v domain.VersionVector
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal version vector: %w", err)
	}
	return v, nil
}

const barterColumns = `
	barter_id, company_id, transaction_number, transaction_date, status,
	received_description, received_fmv, provided_description, provided_fmv,
	fmv_basis, fmv_documentation, is_1099_reportable, tax_year,
	counterparty_contact_id, income_account_id, expense_account_id,
	income_entry_id, expense_entry_id, reference, memo, attachments,
	version, created_at, created_by, last_updated_at, last_updated_by`

func scanBarter(row pgx.Row) (*domain.BarterTransaction, error) {
	var b domain.BarterTransaction
	var version []byte
	err := row.Scan(
		&b.BarterID,
		&b.CompanyID,
		&b.TransactionNumber,
		&b.TransactionDate,
		&b.Status,
		&b.ReceivedDescription,
		&b.ReceivedFMV,
		&b.ProvidedDescription,
		&b.ProvidedFMV,
		&b.FMVBasis,
		&b.FMVDocumentation,
		&b.Is1099Reportable,
		&b.TaxYear,
		&b.CounterpartyContactID,
		&b.IncomeAccountID,
		&b.ExpenseAccountID,
		&b.IncomeEntryID,
		&b.ExpenseEntryID,
		&b.Reference,
		&b.Memo,
		&b.Attachments,
		&version,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if b.Version, err = unmarshalVersion(version); err != nil {
		return nil, err
	}
	return &b, nil
}

// SaveBarterBatch inserts the barter header, both journal entries and all
// line items inside the caller's transaction as one pgx batch.
func (r *PgxBarterRepository) SaveBarterBatch(ctx context.Context, tx pgx.Tx, barter domain.BarterTransaction, income, expense domain.Transaction) error {
	barterVersion, err := marshalVersion(barter.Version)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO barter_transactions (`+barterColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);
	`,
		barter.BarterID,
		barter.CompanyID,
		barter.TransactionNumber,
		barter.TransactionDate,
		barter.Status,
		barter.ReceivedDescription,
		barter.ReceivedFMV,
		barter.ProvidedDescription,
		barter.ProvidedFMV,
		barter.FMVBasis,
		barter.FMVDocumentation,
		barter.Is1099Reportable,
		barter.TaxYear,
		barter.CounterpartyContactID,
		barter.IncomeAccountID,
		barter.ExpenseAccountID,
		barter.IncomeEntryID,
		barter.ExpenseEntryID,
		barter.Reference,
		barter.Memo,
		barter.Attachments,
		barterVersion,
		barter.CreatedAt,
		barter.CreatedBy,
		barter.LastUpdatedAt,
		barter.LastUpdatedBy,
	)

	entryQuery := `
		INSERT INTO transactions (transaction_id, company_id, transaction_number, transaction_date, transaction_type, status, description, reference, memo, attachments, version, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	lineQuery := `
		INSERT INTO transaction_line_items (line_item_id, transaction_id, account_id, debit, credit, contact_id, product_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, entry := range []domain.Transaction{income, expense} {
		entryVersion, err := marshalVersion(entry.Version)
		if err != nil {
			return err
		}
		batch.Queue(entryQuery,
			entry.TransactionID,
			entry.CompanyID,
			entry.TransactionNumber,
			entry.TransactionDate,
			entry.TransactionType,
			entry.Status,
			entry.Description,
			entry.Reference,
			entry.Memo,
			entry.Attachments,
			entryVersion,
			entry.CreatedAt,
			entry.CreatedBy,
			entry.LastUpdatedAt,
			entry.LastUpdatedBy,
		)
		for _, li := range entry.LineItems {
			batch.Queue(lineQuery,
				li.LineItemID,
				li.TransactionID,
				li.AccountID,
				li.Debit,
				li.Credit,
				li.ContactID,
				li.ProductID,
				li.CreatedAt,
				li.CreatedBy,
				li.LastUpdatedAt,
				li.LastUpdatedBy,
			)
		}
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute barter batch for %s: %w", barter.BarterID, err)
	}
	return nil
}

// FindBarterByID retrieves a non-deleted barter transaction by its ID.
func (r *PgxBarterRepository) FindBarterByID(ctx context.Context, barterID string) (*domain.BarterTransaction, error) {
	query := `
		SELECT ` + barterColumns + `
		FROM barter_transactions
		WHERE barter_id = $1 AND deleted_at IS NULL;
	`
	barter, err := scanBarter(r.pool.QueryRow(ctx, query, barterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find barter by ID %s: %w", barterID, err)
	}
	return barter, nil
}

// ListBartersByCompany retrieves all non-deleted barter transactions for a
// company, ordered by transaction date then transaction number.
func (r *PgxBarterRepository) ListBartersByCompany(ctx context.Context, companyID string) ([]domain.BarterTransaction, error) {
	query := `
		SELECT ` + barterColumns + `
		FROM barter_transactions
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY transaction_date ASC, transaction_number ASC;
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list barters for company %s: %w", companyID, err)
	}
	defer rows.Close()

	barters := make([]domain.BarterTransaction, 0)
	for rows.Next() {
		barter, err := scanBarter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan barter row: %w", err)
		}
		barters = append(barters, *barter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating barter rows: %w", err)
	}
	return barters, nil
}

// UpdateBarter persists header field changes, status and version vector.
func (r *PgxBarterRepository) UpdateBarter(ctx context.Context, tx pgx.Tx, barter domain.BarterTransaction) error {
	version, err := marshalVersion(barter.Version)
	if err != nil {
		return err
	}
	query := `
		UPDATE barter_transactions
		SET transaction_date = $2, status = $3,
			received_description = $4, received_fmv = $5,
			provided_description = $6, provided_fmv = $7,
			fmv_basis = $8, fmv_documentation = $9, is_1099_reportable = $10,
			tax_year = $11, counterparty_contact_id = $12, reference = $13,
			memo = $14, attachments = $15, version = $16,
			last_updated_at = $17, last_updated_by = $18
		WHERE barter_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.querierFor(tx).Exec(ctx, query,
		barter.BarterID,
		barter.TransactionDate,
		barter.Status,
		barter.ReceivedDescription,
		barter.ReceivedFMV,
		barter.ProvidedDescription,
		barter.ProvidedFMV,
		barter.FMVBasis,
		barter.FMVDocumentation,
		barter.Is1099Reportable,
		barter.TaxYear,
		barter.CounterpartyContactID,
		barter.Reference,
		barter.Memo,
		barter.Attachments,
		version,
		barter.LastUpdatedAt,
		barter.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update barter %s: %w", barter.BarterID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindEntryByID retrieves a journal entry together with its line items.
func (r *PgxBarterRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, company_id, transaction_number, transaction_date, transaction_type, status, description, reference, memo, attachments, version, created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE transaction_id = $1 AND deleted_at IS NULL;
	`
	var entry domain.Transaction
	var version []byte
	err := r.pool.QueryRow(ctx, query, entryID).Scan(
		&entry.TransactionID,
		&entry.CompanyID,
		&entry.TransactionNumber,
		&entry.TransactionDate,
		&entry.TransactionType,
		&entry.Status,
		&entry.Description,
		&entry.Reference,
		&entry.Memo,
		&entry.Attachments,
		&version,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}
	if entry.Version, err = unmarshalVersion(version); err != nil {
		return nil, err
	}

	lineQuery := `
		SELECT line_item_id, transaction_id, account_id, debit, credit, contact_id, product_id, created_at, created_by, last_updated_at, last_updated_by
		FROM transaction_line_items
		WHERE transaction_id = $1
		ORDER BY debit DESC;
	`
	rows, err := r.pool.Query(ctx, lineQuery, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var li domain.TransactionLineItem
		err := rows.Scan(
			&li.LineItemID,
			&li.TransactionID,
			&li.AccountID,
			&li.Debit,
			&li.Credit,
			&li.ContactID,
			&li.ProductID,
			&li.CreatedAt,
			&li.CreatedBy,
			&li.LastUpdatedAt,
			&li.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		entry.LineItems = append(entry.LineItems, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating line item rows: %w", err)
	}
	return &entry, nil
}

// UpdateEntry persists entry status, memo and version vector changes.
func (r *PgxBarterRepository) UpdateEntry(ctx context.Context, tx pgx.Tx, entry domain.Transaction) error {
	version, err := marshalVersion(entry.Version)
	if err != nil {
		return err
	}
	query := `
		UPDATE transactions
		SET status = $2, description = $3, memo = $4, version = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.querierFor(tx).Exec(ctx, query,
		entry.TransactionID,
		entry.Status,
		entry.Description,
		entry.Memo,
		version,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", entry.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceEntryLineItems deletes an entry's line items and inserts the given
// replacements inside the caller's transaction.
func (r *PgxBarterRepository) ReplaceEntryLineItems(ctx context.Context, tx pgx.Tx, entryID string, items []domain.TransactionLineItem) error {
	if _, err := tx.Exec(ctx, `DELETE FROM transaction_line_items WHERE transaction_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete line items for entry %s: %w", entryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO transaction_line_items (line_item_id, transaction_id, account_id, debit, credit, contact_id, product_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, li := range items {
		batch.Queue(lineQuery,
			li.LineItemID,
			li.TransactionID,
			li.AccountID,
			li.Debit,
			li.Credit,
			li.ContactID,
			li.ProductID,
			li.CreatedAt,
			li.CreatedBy,
			li.LastUpdatedAt,
			li.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert line items for entry %s: %w", entryID, err)
	}
	return nil
}
