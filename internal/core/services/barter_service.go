package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradelens/barter_ledger/internal/apperrors"
	"github.com/tradelens/barter_ledger/internal/core/domain"
	"github.com/tradelens/barter_ledger/internal/core/ports"
	portsrepo "github.com/tradelens/barter_ledger/internal/core/ports/repositories"
	portssvc "github.com/tradelens/barter_ledger/internal/core/ports/services"
	"github.com/tradelens/barter_ledger/internal/dto"
)

// barterService implements the double-entry barter ledger engine. Every
// barter transaction is a header plus two offsetting journal entries routed
// through the company's clearing account; the three records share one status
// and transition together.
type barterService struct {
	BaseService
	barterRepo  portsrepo.BarterRepositoryWithTx
	accountRepo portsrepo.AccountReader
	clearingSvc portssvc.ClearingAccountSvcFacade
	sequenceSvc portssvc.SequenceSvcFacade
	publisher   ports.EventPublisher
}

// NewBarterService creates a new BarterService. publisher may be nil when
// event publishing is disabled.
func NewBarterService(
	barterRepo portsrepo.BarterRepositoryWithTx,
	accountRepo portsrepo.AccountReader,
	clearingSvc portssvc.ClearingAccountSvcFacade,
	sequenceSvc portssvc.SequenceSvcFacade,
	publisher ports.EventPublisher,
) portssvc.BarterSvcFacade {
	return &barterService{
		barterRepo:  barterRepo,
		accountRepo: accountRepo,
		clearingSvc: clearingSvc,
		sequenceSvc: sequenceSvc,
		publisher:   publisher,
	}
}

var _ portssvc.BarterSvcFacade = (*barterService)(nil)

// CreateBarter validates the exchange and atomically creates the barter
// header plus two offsetting DRAFT journal entries.
//
// Income side:  debit clearing / credit income account at received FMV.
// Expense side: debit expense account / credit clearing at provided FMV.
func (s *barterService) CreateBarter(ctx context.Context, req dto.CreateBarterRequest, deviceID string) (*domain.BarterWithEntries, []string, error) {
	validation := ValidateExchange(ExchangeInput{
		ReceivedDescription: &req.GoodsReceivedDescription,
		ReceivedFMV:         req.GoodsReceivedFMV,
		ProvidedDescription: &req.GoodsProvidedDescription,
		ProvidedFMV:         req.GoodsProvidedFMV,
		FMVBasis:            &req.FMVBasis,
	})
	if !validation.IsValid {
		return nil, nil, apperrors.NewValidationError(validation.Errors)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, req.CompanyID, []string{req.IncomeAccountID, req.ExpenseAccountID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	if _, ok := accounts[req.IncomeAccountID]; !ok {
		return nil, nil, fmt.Errorf("%w: income account %s", apperrors.ErrNotFound, req.IncomeAccountID)
	}
	if _, ok := accounts[req.ExpenseAccountID]; !ok {
		return nil, nil, fmt.Errorf("%w: expense account %s", apperrors.ErrNotFound, req.ExpenseAccountID)
	}

	taxYear := req.TransactionDate.Year()
	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     deviceID,
		LastUpdatedAt: now,
		LastUpdatedBy: deviceID,
	}

	tx, err := s.barterRepo.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.barterRepo.Rollback(ctx, tx) }()

	barterNumber, err := s.sequenceSvc.NextTransactionNumber(ctx, tx, req.CompanyID, domain.TypeBarter, taxYear)
	if err != nil {
		return nil, nil, err
	}
	incomeNumber, err := s.sequenceSvc.NextTransactionNumber(ctx, tx, req.CompanyID, domain.TypeJournalEntry, taxYear)
	if err != nil {
		return nil, nil, err
	}
	expenseNumber, err := s.sequenceSvc.NextTransactionNumber(ctx, tx, req.CompanyID, domain.TypeJournalEntry, taxYear)
	if err != nil {
		return nil, nil, err
	}

	clearing, err := s.clearingSvc.ResolveClearingAccount(ctx, tx, req.CompanyID, deviceID)
	if err != nil {
		return nil, nil, err
	}

	incomeEntry := domain.Transaction{
		TransactionID:     uuid.NewString(),
		CompanyID:         req.CompanyID,
		TransactionNumber: incomeNumber,
		TransactionDate:   req.TransactionDate,
		TransactionType:   domain.TypeJournalEntry,
		Status:            domain.Draft,
		Description:       "Barter income: " + req.GoodsReceivedDescription,
		Reference:         req.Reference,
		Version:           domain.NewVersionVector(deviceID),
		AuditFields:       audit,
	}
	incomeEntry.LineItems = []domain.TransactionLineItem{
		{
			LineItemID:    uuid.NewString(),
			TransactionID: incomeEntry.TransactionID,
			AccountID:     clearing.AccountID,
			Debit:         validation.FMVReceived,
			Credit:        decimal.Zero,
			ContactID:     req.CounterpartyContactID,
			AuditFields:   audit,
		},
		{
			LineItemID:    uuid.NewString(),
			TransactionID: incomeEntry.TransactionID,
			AccountID:     req.IncomeAccountID,
			Debit:         decimal.Zero,
			Credit:        validation.FMVReceived,
			ContactID:     req.CounterpartyContactID,
			AuditFields:   audit,
		},
	}

	expenseEntry := domain.Transaction{
		TransactionID:     uuid.NewString(),
		CompanyID:         req.CompanyID,
		TransactionNumber: expenseNumber,
		TransactionDate:   req.TransactionDate,
		TransactionType:   domain.TypeJournalEntry,
		Status:            domain.Draft,
		Description:       "Barter expense: " + req.GoodsProvidedDescription,
		Reference:         req.Reference,
		Version:           domain.NewVersionVector(deviceID),
		AuditFields:       audit,
	}
	expenseEntry.LineItems = []domain.TransactionLineItem{
		{
			LineItemID:    uuid.NewString(),
			TransactionID: expenseEntry.TransactionID,
			AccountID:     req.ExpenseAccountID,
			Debit:         validation.FMVProvided,
			Credit:        decimal.Zero,
			ContactID:     req.CounterpartyContactID,
			AuditFields:   audit,
		},
		{
			LineItemID:    uuid.NewString(),
			TransactionID: expenseEntry.TransactionID,
			AccountID:     clearing.AccountID,
			Debit:         decimal.Zero,
			Credit:        validation.FMVProvided,
			ContactID:     req.CounterpartyContactID,
			AuditFields:   audit,
		},
	}

	barter := domain.BarterTransaction{
		BarterID:              uuid.NewString(),
		CompanyID:             req.CompanyID,
		TransactionNumber:     barterNumber,
		TransactionDate:       req.TransactionDate,
		Status:                domain.Draft,
		ReceivedDescription:   req.GoodsReceivedDescription,
		ReceivedFMV:           validation.FMVReceived,
		ProvidedDescription:   req.GoodsProvidedDescription,
		ProvidedFMV:           validation.FMVProvided,
		FMVBasis:              domain.FMVBasis(req.FMVBasis),
		FMVDocumentation:      req.FMVDocumentation,
		Is1099Reportable:      validation.FMVReceived.GreaterThanOrEqual(domain.ReportableThreshold),
		TaxYear:               taxYear,
		CounterpartyContactID: req.CounterpartyContactID,
		IncomeAccountID:       req.IncomeAccountID,
		ExpenseAccountID:      req.ExpenseAccountID,
		IncomeEntryID:         incomeEntry.TransactionID,
		ExpenseEntryID:        expenseEntry.TransactionID,
		Reference:             req.Reference,
		Memo:                  req.Memo,
		Attachments:           req.Attachments,
		Version:               domain.NewVersionVector(deviceID),
		AuditFields:           audit,
	}

	if err := s.barterRepo.SaveBarterBatch(ctx, tx, barter, incomeEntry, expenseEntry); err != nil {
		return nil, nil, fmt.Errorf("failed to save barter transaction: %w", err)
	}
	if err := s.barterRepo.Commit(ctx, tx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.LogInfo(ctx, "Barter transaction created",
		slog.String("barter_id", barter.BarterID),
		slog.String("transaction_number", barter.TransactionNumber),
		slog.String("company_id", barter.CompanyID))

	return &domain.BarterWithEntries{
		Barter:       barter,
		IncomeEntry:  incomeEntry,
		ExpenseEntry: expenseEntry,
	}, validation.Warnings, nil
}

// GetBarterByID returns the hydrated aggregate for a non-deleted barter.
func (s *barterService) GetBarterByID(ctx context.Context, barterID string) (*domain.BarterWithEntries, error) {
	barter, err := s.barterRepo.FindBarterByID(ctx, barterID)
	if err != nil {
		return nil, err
	}
	income, expense, err := s.loadEntries(ctx, barter)
	if err != nil {
		return nil, err
	}
	return &domain.BarterWithEntries{
		Barter:       *barter,
		IncomeEntry:  *income,
		ExpenseEntry: *expense,
	}, nil
}

func (s *barterService) loadEntries(ctx context.Context, barter *domain.BarterTransaction) (*domain.Transaction, *domain.Transaction, error) {
	income, err := s.barterRepo.FindEntryByID(ctx, barter.IncomeEntryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load income entry %s: %w", barter.IncomeEntryID, err)
	}
	expense, err := s.barterRepo.FindEntryByID(ctx, barter.ExpenseEntryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load expense entry %s: %w", barter.ExpenseEntryID, err)
	}
	return income, expense, nil
}

// UpdateBarter applies a partial update to a DRAFT barter. When either FMV
// changes, the child entries' line items are rebuilt at the new amounts so
// header and ledger never disagree.
func (s *barterService) UpdateBarter(ctx context.Context, barterID string, req dto.UpdateBarterRequest, deviceID string) (*domain.BarterTransaction, []string, error) {
	barter, err := s.barterRepo.FindBarterByID(ctx, barterID)
	if err != nil {
		return nil, nil, err
	}
	if !barter.Status.IsMutable() {
		return nil, nil, apperrors.NewInvalidStateError(string(barter.Status), "update")
	}
	if req.BaseVersion != nil && barter.Version.Concurrent(req.BaseVersion) {
		return nil, nil, fmt.Errorf("%w: barter %s was modified by another device", apperrors.ErrConflict, barterID)
	}

	effectiveReceived := barter.ReceivedFMV.String()
	if req.GoodsReceivedFMV != nil {
		effectiveReceived = *req.GoodsReceivedFMV
	}
	effectiveProvided := barter.ProvidedFMV.String()
	if req.GoodsProvidedFMV != nil {
		effectiveProvided = *req.GoodsProvidedFMV
	}
	validation := ValidateExchange(ExchangeInput{
		ReceivedDescription: req.GoodsReceivedDescription,
		ReceivedFMV:         effectiveReceived,
		ProvidedDescription: req.GoodsProvidedDescription,
		ProvidedFMV:         effectiveProvided,
		FMVBasis:            req.FMVBasis,
	})
	if !validation.IsValid {
		return nil, nil, apperrors.NewValidationError(validation.Errors)
	}

	fmvChanged := !validation.FMVReceived.Equal(barter.ReceivedFMV) || !validation.FMVProvided.Equal(barter.ProvidedFMV)

	if req.TransactionDate != nil {
		barter.TransactionDate = *req.TransactionDate
		barter.TaxYear = req.TransactionDate.Year()
	}
	if req.GoodsReceivedDescription != nil {
		barter.ReceivedDescription = *req.GoodsReceivedDescription
	}
	if req.GoodsProvidedDescription != nil {
		barter.ProvidedDescription = *req.GoodsProvidedDescription
	}
	if req.FMVBasis != nil {
		barter.FMVBasis = domain.FMVBasis(*req.FMVBasis)
	}
	if req.FMVDocumentation != nil {
		barter.FMVDocumentation = req.FMVDocumentation
	}
	if req.CounterpartyContactID != nil {
		barter.CounterpartyContactID = req.CounterpartyContactID
	}
	if req.Reference != nil {
		barter.Reference = *req.Reference
	}
	if req.Memo != nil {
		barter.Memo = *req.Memo
	}
	if req.Attachments != nil {
		barter.Attachments = req.Attachments
	}
	barter.ReceivedFMV = validation.FMVReceived
	barter.ProvidedFMV = validation.FMVProvided
	barter.Is1099Reportable = validation.FMVReceived.GreaterThanOrEqual(domain.ReportableThreshold)

	now := time.Now().UTC()
	barter.Version.Increment(deviceID)
	barter.LastUpdatedAt = now
	barter.LastUpdatedBy = deviceID

	var income, expense *domain.Transaction
	if fmvChanged {
		income, expense, err = s.loadEntries(ctx, barter)
		if err != nil {
			return nil, nil, err
		}
	}

	tx, err := s.barterRepo.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.barterRepo.Rollback(ctx, tx) }()

	if err := s.barterRepo.UpdateBarter(ctx, tx, *barter); err != nil {
		return nil, nil, fmt.Errorf("failed to update barter %s: %w", barterID, err)
	}

	if fmvChanged {
		for _, side := range []struct {
			entry  *domain.Transaction
			amount decimal.Decimal
		}{
			{income, validation.FMVReceived},
			{expense, validation.FMVProvided},
		} {
			side.entry.Version.Increment(deviceID)
			side.entry.LastUpdatedAt = now
			side.entry.LastUpdatedBy = deviceID
			items := rebuildLineItems(side.entry.LineItems, side.amount, now, deviceID)
			if err := s.barterRepo.UpdateEntry(ctx, tx, *side.entry); err != nil {
				return nil, nil, fmt.Errorf("failed to update entry %s: %w", side.entry.TransactionID, err)
			}
			if err := s.barterRepo.ReplaceEntryLineItems(ctx, tx, side.entry.TransactionID, items); err != nil {
				return nil, nil, fmt.Errorf("failed to replace line items for entry %s: %w", side.entry.TransactionID, err)
			}
		}
	}

	if err := s.barterRepo.Commit(ctx, tx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.LogInfo(ctx, "Barter transaction updated",
		slog.String("barter_id", barter.BarterID),
		slog.Bool("fmv_changed", fmvChanged))
	return barter, validation.Warnings, nil
}

// rebuildLineItems regenerates an entry's two line items at the new amount,
// keeping each line's account and side. The amount flows to both lines so the
// entry stays balanced.
func rebuildLineItems(existing []domain.TransactionLineItem, amount decimal.Decimal, now time.Time, deviceID string) []domain.TransactionLineItem {
	items := make([]domain.TransactionLineItem, 0, len(existing))
	for _, old := range existing {
		item := domain.TransactionLineItem{
			LineItemID:    uuid.NewString(),
			TransactionID: old.TransactionID,
			AccountID:     old.AccountID,
			ContactID:     old.ContactID,
			ProductID:     old.ProductID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     deviceID,
				LastUpdatedAt: now,
				LastUpdatedBy: deviceID,
			},
		}
		if old.Debit.IsPositive() {
			item.Debit = amount
			item.Credit = decimal.Zero
		} else {
			item.Debit = decimal.Zero
			item.Credit = amount
		}
		items = append(items, item)
	}
	return items
}

// PostBarter finalizes a DRAFT barter. The status change cascades to both
// child entries; each of the three records gets its own version bump.
func (s *barterService) PostBarter(ctx context.Context, barterID, deviceID string) (*domain.BarterTransaction, error) {
	barter, err := s.transition(ctx, barterID, deviceID, domain.Posted, "post", nil)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, domain.TopicBarterPosted, barter, deviceID)
	return barter, nil
}

// VoidBarter voids a DRAFT or POSTED barter, appending the reason to the memo
// instead of overwriting it. Voiding never deletes ledger rows.
func (s *barterService) VoidBarter(ctx context.Context, barterID, deviceID, reason string) (*domain.BarterTransaction, error) {
	mutate := func(b *domain.BarterTransaction) {
		note := "VOID: " + strings.TrimSpace(reason)
		if b.Memo != "" {
			b.Memo = b.Memo + "\n" + note
		} else {
			b.Memo = note
		}
	}
	barter, err := s.transition(ctx, barterID, deviceID, domain.Void, "void", mutate)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, domain.TopicBarterVoided, barter, deviceID)
	return barter, nil
}

// transition moves the barter and both child entries to target in one
// database transaction.
func (s *barterService) transition(ctx context.Context, barterID, deviceID string, target domain.TransactionStatus, attempted string, mutate func(*domain.BarterTransaction)) (*domain.BarterTransaction, error) {
	barter, err := s.barterRepo.FindBarterByID(ctx, barterID)
	if err != nil {
		return nil, err
	}
	if !barter.Status.CanTransitionTo(target) {
		return nil, apperrors.NewInvalidStateError(string(barter.Status), attempted)
	}
	income, expense, err := s.loadEntries(ctx, barter)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	barter.Status = target
	barter.Version.Increment(deviceID)
	barter.LastUpdatedAt = now
	barter.LastUpdatedBy = deviceID
	if mutate != nil {
		mutate(barter)
	}
	for _, entry := range []*domain.Transaction{income, expense} {
		entry.Status = target
		entry.Version.Increment(deviceID)
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = deviceID
	}

	tx, err := s.barterRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.barterRepo.Rollback(ctx, tx) }()

	if err := s.barterRepo.UpdateBarter(ctx, tx, *barter); err != nil {
		return nil, fmt.Errorf("failed to update barter %s: %w", barterID, err)
	}
	for _, entry := range []*domain.Transaction{income, expense} {
		if err := s.barterRepo.UpdateEntry(ctx, tx, *entry); err != nil {
			return nil, fmt.Errorf("failed to update entry %s: %w", entry.TransactionID, err)
		}
	}
	if err := s.barterRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.LogInfo(ctx, "Barter transaction status changed",
		slog.String("barter_id", barter.BarterID),
		slog.String("status", string(target)))
	return barter, nil
}

// publishEvent emits a lifecycle event. Publishing is best effort: a broker
// failure is logged, never surfaced to the caller, because the ledger write
// has already committed.
func (s *barterService) publishEvent(ctx context.Context, topic string, barter *domain.BarterTransaction, deviceID string) {
	if s.publisher == nil {
		return
	}
	event := domain.BarterEvent{
		BarterID:          barter.BarterID,
		CompanyID:         barter.CompanyID,
		TransactionNumber: barter.TransactionNumber,
		ReceivedFMV:       barter.ReceivedFMV,
		ProvidedFMV:       barter.ProvidedFMV,
		TaxYear:           barter.TaxYear,
		DeviceID:          deviceID,
		OccurredAt:        time.Now().UTC(),
	}
	if err := s.publisher.Publish(topic, event); err != nil {
		s.LogWarn(ctx, "Failed to publish barter event",
			slog.String("topic", topic),
			slog.String("barter_id", barter.BarterID),
			slog.String("error", err.Error()))
	}
}

// QueryBarters filters a company's barters in memory through a predicate
// chain, then paginates. Soft-deleted records never reach this layer.
func (s *barterService) QueryBarters(ctx context.Context, req dto.QueryBartersRequest) ([]domain.BarterTransaction, error) {
	barters, err := s.barterRepo.ListBartersByCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list barters for company %s: %w", req.CompanyID, err)
	}

	filtered := make([]domain.BarterTransaction, 0, len(barters))
	for _, b := range barters {
		if !matchesQuery(&b, &req) {
			continue
		}
		filtered = append(filtered, b)
	}

	offset := req.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(filtered) {
		return []domain.BarterTransaction{}, nil
	}
	end := len(filtered)
	if req.Limit > 0 && offset+req.Limit < end {
		end = offset + req.Limit
	}
	return filtered[offset:end], nil
}

func matchesQuery(b *domain.BarterTransaction, req *dto.QueryBartersRequest) bool {
	if len(req.Statuses) > 0 {
		found := false
		for _, status := range req.Statuses {
			if b.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if req.DateFrom != nil && b.TransactionDate.Before(*req.DateFrom) {
		return false
	}
	if req.DateTo != nil && b.TransactionDate.After(*req.DateTo) {
		return false
	}
	if req.TaxYear != nil && b.TaxYear != *req.TaxYear {
		return false
	}
	if req.Reportable != nil && b.Is1099Reportable != *req.Reportable {
		return false
	}
	if req.CounterpartyContactID != nil {
		if b.CounterpartyContactID == nil || *b.CounterpartyContactID != *req.CounterpartyContactID {
			return false
		}
	}
	if req.SearchText != "" {
		needle := strings.ToLower(req.SearchText)
		if !strings.Contains(strings.ToLower(b.ReceivedDescription), needle) &&
			!strings.Contains(strings.ToLower(b.ProvidedDescription), needle) {
			return false
		}
	}
	return true
}
