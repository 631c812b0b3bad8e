package order_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssanjae/offline-orders/internal/order"
	"github.com/ssanjae/offline-orders/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func ledgerOrder(id string) *order.Order {
	return &order.Order{
		ID:         id,
		BuyerName:  "이상재",
		BuyerPhone: "01012345678",
		Memo:       "-",
		Items: []order.Item{
			{ProductID: "p1", Name: "수제 물떡 어묵탕", Price: 6900, Quantity: 1},
		},
		TotalPrice: 6900,
		Status:     order.StatusPending,
		CreatedAt:  time.Date(2025, 11, 2, 9, 30, 0, 0, time.UTC),
	}
}

func TestRepository_EmptyLedger(t *testing.T) {
	repo := order.NewRepository(openTestStore(t))

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestRepository_MalformedLedgerReadsAsEmpty(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Put(storage.OrdersKey, []byte(`{broken`)))

	repo := order.NewRepository(store)
	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestRepository_AppendAndGet(t *testing.T) {
	repo := order.NewRepository(openTestStore(t))

	require.NoError(t, repo.Append(context.Background(), ledgerOrder("o1")))
	require.NoError(t, repo.Append(context.Background(), ledgerOrder("o2")))

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, "o2", orders[1].ID)

	got, err := repo.GetByID(context.Background(), "o2")
	require.NoError(t, err)
	assert.Equal(t, "o2", got.ID)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, order.ErrOrderNotFound))
}

func TestRepository_Update(t *testing.T) {
	repo := order.NewRepository(openTestStore(t))
	require.NoError(t, repo.Append(context.Background(), ledgerOrder("o1")))

	updated := ledgerOrder("o1")
	updated.Status = order.StatusPaid
	require.NoError(t, repo.Update(context.Background(), updated))

	got, err := repo.GetByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, got.Status)

	assert.True(t, errors.Is(repo.Update(context.Background(), ledgerOrder("missing")), order.ErrOrderNotFound))
}

func TestRepository_Delete(t *testing.T) {
	repo := order.NewRepository(openTestStore(t))
	require.NoError(t, repo.Append(context.Background(), ledgerOrder("o1")))

	require.NoError(t, repo.Delete(context.Background(), "o1"))

	_, err := repo.GetByID(context.Background(), "o1")
	assert.True(t, errors.Is(err, order.ErrOrderNotFound))

	assert.True(t, errors.Is(repo.Delete(context.Background(), "o1"), order.ErrOrderNotFound))
}

func TestRepository_LegacyOrderWithoutItems(t *testing.T) {
	store := openTestStore(t)
	// Early ledgers stored orders without an items array.
	require.NoError(t, store.Put(storage.OrdersKey, []byte(`[{"id":"o1","buyerName":"이상재","buyerPhone":"01012345678","totalPrice":6900,"status":"pending"}]`)))

	repo := order.NewRepository(store)
	got, err := repo.GetByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Equal(t, 6900, got.TotalPrice)
}
