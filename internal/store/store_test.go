package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/domain"
	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/internal/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	migrations.Run(db)
	return New(db)
}

func mustCreateItem(t *testing.T, s *Store, category, name string, used bool, expiry string) int64 {
	t.Helper()
	id, err := s.CreateItem(context.Background(), domain.Item{
		Category:   category,
		Name:       name,
		Quantity:   10,
		ExpiryDate: expiry,
	})
	require.NoError(t, err)
	if used {
		require.NoError(t, s.AcquireItem(context.Background(), id))
	}
	return id
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "alice@example.com", "alice", "hash")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "other@example.com", "alice", "hash")
	assert.ErrorIs(t, err, ErrDuplicateUser)

	_, err = s.CreateUser(ctx, "alice@example.com", "other", "hash")
	assert.ErrorIs(t, err, ErrDuplicateUser)

	n, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestFindUserByUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "alice@example.com", "alice", "hash")
	require.NoError(t, err)

	u, err := s.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "hash", u.Password)

	_, err = s.FindUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAcquireItemIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := mustCreateItem(t, s, domain.CategoryMedicalDrugs, "Aspirin", false, "2099-01-01")

	require.NoError(t, s.AcquireItem(ctx, id))
	require.NoError(t, s.AcquireItem(ctx, id))

	it, err := s.GetItem(ctx, id)
	require.NoError(t, err)
	assert.True(t, it.Used)

	assert.ErrorIs(t, s.AcquireItem(ctx, 9999), ErrNotFound)
}

func TestDeleteItemRules(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	unused := mustCreateItem(t, s, domain.CategoryMedicalDrugs, "Gauze", false, "2099-01-01")
	used := mustCreateItem(t, s, domain.CategoryMedicalDrugs, "Syringe", true, "2099-01-01")

	require.NoError(t, s.DeleteItem(ctx, unused))
	_, err := s.GetItem(ctx, unused)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteItem(ctx, used), ErrItemUsed)
	it, err := s.GetItem(ctx, used)
	require.NoError(t, err)
	assert.True(t, it.Used)

	assert.ErrorIs(t, s.DeleteItem(ctx, 9999), ErrNotFound)
}

func TestFilterItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	today := "2025-06-15"

	a := mustCreateItem(t, s, domain.CategoryMedicalDrugs, "Paracetamol", false, "2020-01-01")
	b := mustCreateItem(t, s, domain.CategoryMedicalDrugs, "Ibuprofen", true, "2099-01-01")
	c := mustCreateItem(t, s, domain.CategoryMedicalEquipments, "Stethoscope", false, "2099-01-01")

	ids := func(items []domain.Item) []int64 {
		out := make([]int64, len(items))
		for i, it := range items {
			out[i] = it.ID
		}
		return out
	}

	items, err := s.FilterItems(ctx, ViewFilter{}, today)
	require.NoError(t, err)
	assert.Equal(t, []int64{a, b, c}, ids(items))

	// Case-insensitive substring search on name.
	items, err = s.FilterItems(ctx, ViewFilter{Search: "paraCETA"}, today)
	require.NoError(t, err)
	assert.Equal(t, []int64{a}, ids(items))

	items, err = s.FilterItems(ctx, ViewFilter{Category: domain.CategoryMedicalEquipments}, today)
	require.NoError(t, err)
	assert.Equal(t, []int64{c}, ids(items))

	// "expired" overrides category equality with an expiry predicate.
	items, err = s.FilterItems(ctx, ViewFilter{Category: "expired"}, today)
	require.NoError(t, err)
	assert.Equal(t, []int64{a}, ids(items))

	items, err = s.FilterItems(ctx, ViewFilter{Search: "o", Category: domain.CategoryMedicalDrugs}, today)
	require.NoError(t, err)
	assert.Equal(t, []int64{a, b}, ids(items))
}

func TestReportItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	today := "2025-06-15"

	a := mustCreateItem(t, s, domain.CategoryMedicalDrugs, "Paracetamol", false, "2020-01-01")
	b := mustCreateItem(t, s, domain.CategoryMedicalDrugs, "Ibuprofen", true, "2099-01-01")

	ids := func(items []domain.Item) []int64 {
		out := make([]int64, len(items))
		for i, it := range items {
			out[i] = it.ID
		}
		return out
	}

	items, err := s.ReportItems(ctx, ReportFilter{Status: "expired"}, today)
	require.NoError(t, err)
	assert.Equal(t, []int64{a}, ids(items))

	// Active means not used, regardless of expiry.
	items, err = s.ReportItems(ctx, ReportFilter{Status: "active"}, today)
	require.NoError(t, err)
	assert.Equal(t, []int64{a}, ids(items))

	items, err = s.ReportItems(ctx, ReportFilter{Status: "used"}, today)
	require.NoError(t, err)
	assert.Equal(t, []int64{b}, ids(items))

	items, err = s.ReportItems(ctx, ReportFilter{Category: "All"}, today)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = s.ReportItems(ctx, ReportFilter{Category: domain.CategoryMedicalDrugs, Status: "used"}, today)
	require.NoError(t, err)
	assert.Equal(t, []int64{b}, ids(items))
}

func TestDistinctCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateItem(t, s, domain.CategoryPharmaceuticals, "Insulin", false, "2099-01-01")
	mustCreateItem(t, s, domain.CategoryMedicalDrugs, "Aspirin", false, "2099-01-01")
	mustCreateItem(t, s, domain.CategoryMedicalDrugs, "Ibuprofen", false, "2099-01-01")

	categories, err := s.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.CategoryMedicalDrugs, domain.CategoryPharmaceuticals}, categories)
}

func TestDashboardAggregates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	today := "2025-06-15"

	mustCreateItem(t, s, domain.CategoryMedicalDrugs, "Expired drug", false, "2020-01-01")
	mustCreateItem(t, s, domain.CategoryMedicalDrugs, "Used drug", true, "2099-01-01")
	mustCreateItem(t, s, domain.CategoryMedicalEquipments, "Monitor", false, "2099-01-01")

	stats, err := s.Dashboard(ctx, today)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalInventory)
	assert.Equal(t, int64(1), stats.TotalExpired)
	assert.Equal(t, int64(1), stats.UsedInventory)
	assert.Equal(t, int64(1), stats.InventoryTrends[domain.CategoryMedicalDrugs])
	assert.Equal(t, int64(1), stats.InventoryTrends[domain.CategoryMedicalEquipments])
	assert.Equal(t, int64(0), stats.InventoryTrends[domain.CategoryPharmaceuticals])
	assert.True(t, stats.Stockouts[domain.CategoryMedicalDrugs])
	assert.True(t, stats.Stockouts[domain.CategoryPharmaceuticals])
}

func TestDashboardStockoutBoundary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	today := "2025-06-15"

	// 49 items in one category, 50 in another; used/expired items still count.
	for i := 0; i < StockoutThreshold-1; i++ {
		mustCreateItem(t, s, domain.CategoryMedicalDrugs, fmt.Sprintf("drug-%d", i), i%2 == 0, "2020-01-01")
	}
	for i := 0; i < StockoutThreshold; i++ {
		mustCreateItem(t, s, domain.CategoryMedicalEquipments, fmt.Sprintf("equip-%d", i), false, "2099-01-01")
	}

	stats, err := s.Dashboard(ctx, today)
	require.NoError(t, err)

	assert.True(t, stats.Stockouts[domain.CategoryMedicalDrugs])
	assert.False(t, stats.Stockouts[domain.CategoryMedicalEquipments])
}
