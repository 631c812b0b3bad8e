package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ssanjae/offline-orders/internal/storage"
)

type Repository interface {
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	Append(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id string) error
}

// boltRepository keeps the whole ledger as one JSON blob. Every mutation is a
// read-modify-write of the full list; last write wins.
type boltRepository struct {
	store *storage.Store
}

func NewRepository(store *storage.Store) Repository {
	return &boltRepository{store: store}
}

// List returns every order in the ledger, oldest first. A malformed ledger is
// logged and read as empty rather than surfaced.
func (r *boltRepository) List(ctx context.Context) ([]Order, error) {
	raw, err := r.store.Get(storage.OrdersKey)
	if err != nil {
		return nil, fmt.Errorf("order: failed to load ledger: %w", err)
	}
	if raw == nil {
		return []Order{}, nil
	}

	var orders []Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		log.Warn().Err(err).Msg("order: malformed ledger data, reading as empty")
		return []Order{}, nil
	}
	return orders, nil
}

func (r *boltRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

func (r *boltRepository) Append(ctx context.Context, o *Order) error {
	orders, err := r.List(ctx)
	if err != nil {
		return err
	}
	orders = append(orders, *o)
	return r.write(orders)
}

func (r *boltRepository) Update(ctx context.Context, o *Order) error {
	orders, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == o.ID {
			orders[i] = *o
			return r.write(orders)
		}
	}
	return ErrOrderNotFound
}

func (r *boltRepository) Delete(ctx context.Context, id string) error {
	orders, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == id {
			orders = append(orders[:i], orders[i+1:]...)
			return r.write(orders)
		}
	}
	return ErrOrderNotFound
}

func (r *boltRepository) write(orders []Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("order: failed to encode ledger: %w", err)
	}
	if err := r.store.Put(storage.OrdersKey, raw); err != nil {
		return fmt.Errorf("order: failed to save ledger: %w", err)
	}
	return nil
}
