package store

import (
	"context"

	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/domain"
)

// StockoutThreshold is the per-category count below which a category
// is flagged as at risk of stocking out.
const StockoutThreshold = 50

// DashboardStats carries the home-page aggregates. Everything is
// recomputed from full-table scans on each request; nothing derived is
// persisted.
type DashboardStats struct {
	TotalInventory  int64            `json:"total_inventory"`
	TotalExpired    int64            `json:"total_expired"`
	Stockouts       map[string]bool  `json:"stockouts"`
	InventoryTrends map[string]int64 `json:"inventory_trends"`
	UsedInventory   int64            `json:"used_inventory"`
}

// Dashboard computes the five home-page aggregates. today is an ISO
// date used for the expiry count.
func (s *Store) Dashboard(ctx context.Context, today string) (DashboardStats, error) {
	stats := DashboardStats{
		Stockouts:       make(map[string]bool),
		InventoryTrends: make(map[string]int64),
	}

	if err := s.db.GetContext(ctx, &stats.TotalInventory, `SELECT COUNT(*) FROM items WHERE used = 0`); err != nil {
		return DashboardStats{}, err
	}
	if err := s.db.GetContext(ctx, &stats.TotalExpired, `SELECT COUNT(*) FROM items WHERE expiry_date < ?`, today); err != nil {
		return DashboardStats{}, err
	}
	for _, category := range domain.Categories() {
		// Stockout counts the whole category, used and expired included.
		var total int64
		if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM items WHERE category = ?`, category); err != nil {
			return DashboardStats{}, err
		}
		stats.Stockouts[category] = total < StockoutThreshold

		var unused int64
		if err := s.db.GetContext(ctx, &unused, `SELECT COUNT(*) FROM items WHERE category = ? AND used = 0`, category); err != nil {
			return DashboardStats{}, err
		}
		stats.InventoryTrends[category] = unused
	}
	if err := s.db.GetContext(ctx, &stats.UsedInventory, `SELECT COUNT(*) FROM items WHERE used = 1`); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}
