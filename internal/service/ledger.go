package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tavolo/tavolo/internal/metrics"
	"github.com/tavolo/tavolo/internal/model"
	"github.com/tavolo/tavolo/internal/money"
)

// Ledger service errors.
var (
	ErrMissingLedgerFields = errors.New("value and date are required")
	ErrInvalidLedgerDate   = errors.New("invalid date format")
)

// LedgerEntryInput defines input for recording an income or expense.
type LedgerEntryInput struct {
	Value money.Amount
	Note  *string
	Date  string
}

// LedgerService handles income and expense tracking.
type LedgerService struct {
	ledger  LedgerRepository
	metrics metrics.Recorder
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledger LedgerRepository, recorder metrics.Recorder) *LedgerService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &LedgerService{ledger: ledger, metrics: recorder}
}

// List returns all entries of one kind for a tenant, newest first.
func (s *LedgerService) List(ctx context.Context, restaurantID string, kind model.LedgerKind) ([]*model.LedgerEntry, error) {
	entries, err := s.ledger.ListLedgerEntries(ctx, restaurantID, kind)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	return entries, nil
}

// Record appends an income or expense entry to the tenant's ledger.
// A zero value counts as missing, matching the presence check on date.
func (s *LedgerService) Record(ctx context.Context, restaurantID string, kind model.LedgerKind, input LedgerEntryInput) (*model.LedgerEntry, error) {
	if input.Value.IsZero() || input.Date == "" {
		return nil, ErrMissingLedgerFields
	}

	date, err := parseLedgerDate(input.Date)
	if err != nil {
		return nil, ErrInvalidLedgerDate
	}

	now := time.Now().UTC()
	entry := &model.LedgerEntry{
		ID:           newID(),
		Kind:         kind,
		Value:        input.Value,
		Note:         input.Note,
		Date:         date,
		RestaurantID: restaurantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.ledger.CreateLedgerEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("record ledger entry: %w", err)
	}

	s.metrics.IncLedgerEntryRecorded(string(kind))

	return entry, nil
}

// Summarize aggregates the tenant's ledger over an optional period.
func (s *LedgerService) Summarize(ctx context.Context, restaurantID string, from, to *time.Time) (*model.LedgerSummary, error) {
	summary, err := s.ledger.SummarizeLedger(ctx, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("summarize ledger: %w", err)
	}
	return summary, nil
}

// parseLedgerDate accepts RFC3339 timestamps and bare dates, the two
// formats the dashboard sends.
func parseLedgerDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidLedgerDate
}
