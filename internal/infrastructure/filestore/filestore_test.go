package filestore

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidkuria/resto-api/internal/domain/entity"
	"github.com/davidkuria/resto-api/pkg/pagination"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resto.json")
	store, err := Open(path)
	require.NoError(t, err)
	return store, path
}

func testBill(mobile string) *entity.Bill {
	return &entity.Bill{
		CustomerMobile: mobile,
		Total:          625,
		Items: []entity.BillItem{
			{Name: "Masala Dosa", UnitPrice: 250, Quantity: 2},
			{Name: "Filter Coffee", UnitPrice: 125, Quantity: 1},
		},
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	bills := store.Bills()
	ctx := context.Background()

	bill := testBill("0712345678")
	require.NoError(t, bills.CreateWithItems(ctx, bill))
	require.NotEqual(t, uuid.Nil, bill.ID)
	assert.False(t, bill.CreatedAt.IsZero())

	got, err := bills.GetWithItems(ctx, bill.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Masala Dosa", got.Items[0].Name)
	assert.Equal(t, "Filter Coffee", got.Items[1].Name)
	assert.Equal(t, int64(625), got.Total)

	missing, err := bills.GetWithItems(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_ReloadFromDisk(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	bill := testBill("0712345678")
	require.NoError(t, store.Bills().CreateWithItems(ctx, bill))

	item := &entity.MenuItem{Name: "Idli Sambar", Price: 800}
	require.NoError(t, store.Menu().Create(ctx, item))

	// A fresh store over the same file sees the identical dataset.
	reloaded, err := Open(path)
	require.NoError(t, err)

	got, err := reloaded.Bills().GetWithItems(ctx, bill.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, bill.CustomerMobile, got.CustomerMobile)
	assert.Equal(t, int64(625), got.Total)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Masala Dosa", got.Items[0].Name)
	assert.Equal(t, int64(250), got.Items[0].UnitPrice)

	menuItem, err := reloaded.Menu().GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, menuItem)
	assert.Equal(t, int64(800), menuItem.Price)
}

func TestStore_ConcurrentCreatesAreNotLost(t *testing.T) {
	store, path := newTestStore(t)
	bills := store.Bills()
	ctx := context.Background()

	const writers = 10
	ids := make([]uuid.UUID, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bill := testBill(fmt.Sprintf("07%08d", i))
			assert.NoError(t, bills.CreateWithItems(ctx, bill))
			ids[i] = bill.ID
		}(i)
	}
	wg.Wait()

	count, err := bills.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(writers), count)

	for _, id := range ids {
		got, err := bills.GetWithItems(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Len(t, got.Items, 2)
	}

	// The flushed file holds all of them too.
	reloaded, err := Open(path)
	require.NoError(t, err)
	count, err = reloaded.Bills().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(writers), count)
}

func TestStore_ReadsDoNotAliasStoreState(t *testing.T) {
	store, _ := newTestStore(t)
	bills := store.Bills()
	ctx := context.Background()

	bill := testBill("0712345678")
	require.NoError(t, bills.CreateWithItems(ctx, bill))

	first, err := bills.GetWithItems(ctx, bill.ID)
	require.NoError(t, err)
	first.Items[0].Name = "mutated"
	first.Total = 0

	second, err := bills.GetWithItems(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "Masala Dosa", second.Items[0].Name)
	assert.Equal(t, int64(625), second.Total)
}

func TestStore_MenuChangeDoesNotAlterBills(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	item := &entity.MenuItem{Name: "Masala Dosa", Price: 250}
	require.NoError(t, store.Menu().Create(ctx, item))

	bill := testBill("0712345678")
	require.NoError(t, store.Bills().CreateWithItems(ctx, bill))

	item.Price = 999
	require.NoError(t, store.Menu().Update(ctx, item))

	got, err := store.Bills().GetWithItems(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), got.Items[0].UnitPrice)
}

func TestStore_List(t *testing.T) {
	store, _ := newTestStore(t)
	bills := store.Bills()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		bill := testBill(fmt.Sprintf("07%08d", i))
		bill.CreatedAt = time.Date(2026, 1, 10+i, 12, 0, 0, 0, time.UTC)
		require.NoError(t, bills.CreateWithItems(ctx, bill))
	}

	page, total, err := bills.List(ctx, &pagination.PaginationParams{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	// Newest first.
	assert.True(t, page[0].CreatedAt.After(page[1].CreatedAt))
}

func TestStore_CanceledContext(t *testing.T) {
	store, _ := newTestStore(t)
	bills := store.Bills()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bills.CreateWithItems(ctx, testBill("0712345678"))
	assert.ErrorIs(t, err, context.Canceled)

	count, err := bills.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
