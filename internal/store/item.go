package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/domain"
)

// ViewFilter narrows the items listing. Category takes either an exact
// category name or the literal "expired", which switches the filter to
// an expiry-date predicate instead.
type ViewFilter struct {
	Search   string
	Category string
}

// ReportFilter narrows the reports listing. Status is one of "active",
// "used" or "expired"; empty means no status predicate. An empty or
// "All" category applies no category predicate.
type ReportFilter struct {
	Category string
	Status   string
}

// CreateItem inserts a new inventory item and returns its id.
func (s *Store) CreateItem(ctx context.Context, it domain.Item) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO items (category, name, quantity, expiry_date, used) VALUES (?, ?, ?, ?, 0)`,
		it.Category, it.Name, it.Quantity, it.ExpiryDate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetItem fetches a single item by id.
func (s *Store) GetItem(ctx context.Context, id int64) (domain.Item, error) {
	var it domain.Item
	err := s.db.GetContext(ctx, &it, `SELECT id, category, name, quantity, expiry_date, used, created_at FROM items WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, ErrNotFound
	}
	return it, err
}

// AcquireItem marks an item as used. Acquiring an already-used item is
// a no-op success; a missing id is ErrNotFound.
func (s *Store) AcquireItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE items SET used = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem removes an item, refusing when it has been used. This is
// the one place the used flag blocks a write.
func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	it, err := s.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if it.Used {
		return ErrItemUsed
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	return err
}

// FilterItems returns the items matching a view filter, in id order.
// today is an ISO date used for the "expired" pseudo-category.
func (s *Store) FilterItems(ctx context.Context, f ViewFilter, today string) ([]domain.Item, error) {
	var (
		clauses []string
		args    []any
	)
	if f.Search != "" {
		// SQLite LIKE is case-insensitive for ASCII.
		clauses = append(clauses, "name LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}
	if f.Category == "expired" {
		clauses = append(clauses, "expiry_date < ?")
		args = append(args, today)
	} else if f.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, f.Category)
	}
	return s.selectItems(ctx, clauses, args)
}

// ReportItems returns the items matching a report filter, in id order.
func (s *Store) ReportItems(ctx context.Context, f ReportFilter, today string) ([]domain.Item, error) {
	var (
		clauses []string
		args    []any
	)
	if f.Category != "" && f.Category != "All" {
		clauses = append(clauses, "category = ?")
		args = append(args, f.Category)
	}
	switch f.Status {
	case "active":
		clauses = append(clauses, "used = 0")
	case "used":
		clauses = append(clauses, "used = 1")
	case "expired":
		clauses = append(clauses, "expiry_date < ?")
		args = append(args, today)
	}
	return s.selectItems(ctx, clauses, args)
}

func (s *Store) selectItems(ctx context.Context, clauses []string, args []any) ([]domain.Item, error) {
	query := `SELECT id, category, name, quantity, expiry_date, used, created_at FROM items`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	items := []domain.Item{}
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// DistinctCategories lists the categories currently present in the
// store, reflecting actual data rather than the fixed entry enum.
func (s *Store) DistinctCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := s.db.SelectContext(ctx, &categories, `SELECT DISTINCT category FROM items ORDER BY category`)
	return categories, err
}
