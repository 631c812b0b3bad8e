package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ssanjae/offline-orders/internal/storage"
)

type Repository interface {
	Load(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, products []Product) error
}

type boltRepository struct {
	store *storage.Store
}

func NewRepository(store *storage.Store) Repository {
	return &boltRepository{store: store}
}

// Load returns the persisted catalog if it is a non-empty, well-formed list,
// otherwise the built-in default catalog. Malformed data is logged and never
// surfaced to the caller.
func (r *boltRepository) Load(ctx context.Context) ([]Product, error) {
	raw, err := r.store.Get(storage.ProductsKey)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to load products: %w", err)
	}
	if raw == nil {
		return DefaultProducts(), nil
	}

	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		log.Warn().Err(err).Msg("catalog: malformed product data, falling back to defaults")
		return DefaultProducts(), nil
	}
	if len(products) == 0 {
		return DefaultProducts(), nil
	}

	// Records written before products carried ids get one assigned here, so
	// every edit and delete can be identity-based. The assigned ids are
	// written back immediately; otherwise each load would hand out fresh ids
	// and no returned id would survive to the next call.
	assigned := false
	for i := range products {
		if products[i].ID == "" {
			id, err := uuid.NewV4()
			if err != nil {
				return nil, fmt.Errorf("catalog: failed to generate product id: %w", err)
			}
			products[i].ID = id.String()
			assigned = true
		}
	}
	if assigned {
		if err := r.Save(ctx, products); err != nil {
			return nil, fmt.Errorf("catalog: failed to persist assigned product ids: %w", err)
		}
	}

	return products, nil
}

// Save persists the full list, overwriting any prior value.
func (r *boltRepository) Save(ctx context.Context, products []Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("catalog: failed to encode products: %w", err)
	}
	if err := r.store.Put(storage.ProductsKey, raw); err != nil {
		return fmt.Errorf("catalog: failed to save products: %w", err)
	}
	return nil
}
