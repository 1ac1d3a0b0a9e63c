package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tavolo/tavolo/internal/model"
)

const ledgerColumns = `id, restaurant_id, kind, value_cents, note, occurred_at, created_at, updated_at`

// CreateLedgerEntry inserts a new income or expense entry.
func (r *Repository) CreateLedgerEntry(ctx context.Context, entry *model.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, restaurant_id, kind, value_cents, note, occurred_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.RestaurantID,
		string(entry.Kind),
		entry.Value,
		entry.Note,
		entry.Date,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return nil
}

// ListLedgerEntries returns all entries of one kind for a restaurant,
// newest first.
func (r *Repository) ListLedgerEntries(ctx context.Context, restaurantID string, kind model.LedgerKind) ([]*model.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE restaurant_id = $1 AND kind = $2 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, restaurantID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}

	return entries, nil
}

// SummarizeLedger aggregates income and expense totals for a restaurant.
// from/to bound occurred_at; either may be nil for an open interval.
// Totals are computed in SQL over integer cents, so no precision is lost.
func (r *Repository) SummarizeLedger(ctx context.Context, restaurantID string, from, to *time.Time) (*model.LedgerSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(value_cents) FILTER (WHERE kind = 'income'), 0),
			COALESCE(SUM(value_cents) FILTER (WHERE kind = 'expense'), 0),
			COUNT(*) FILTER (WHERE kind = 'income'),
			COUNT(*) FILTER (WHERE kind = 'expense')
		FROM ledger_entries
		WHERE restaurant_id = $1
		  AND ($2::timestamptz IS NULL OR occurred_at >= $2)
		  AND ($3::timestamptz IS NULL OR occurred_at <= $3)
	`

	var summary model.LedgerSummary
	err := r.pool.QueryRow(ctx, query, restaurantID, from, to).Scan(
		&summary.Income,
		&summary.Expenses,
		&summary.IncomeCount,
		&summary.ExpenseCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize ledger: %w", err)
	}

	summary.Net = summary.Income - summary.Expenses
	return &summary, nil
}

// scanLedgerEntry scans a single row into a LedgerEntry model.
func scanLedgerEntry(row pgx.Row) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	var kind string
	err := row.Scan(
		&entry.ID,
		&entry.RestaurantID,
		&kind,
		&entry.Value,
		&entry.Note,
		&entry.Date,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	entry.Kind = model.LedgerKind(kind)
	return &entry, err
}
