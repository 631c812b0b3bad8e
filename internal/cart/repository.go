package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ssanjae/offline-orders/internal/storage"
)

// DraftRepository persists the transient checkout snapshot.
type DraftRepository interface {
	Load(ctx context.Context) (*Draft, error)
	Save(ctx context.Context, draft *Draft) error
	Clear(ctx context.Context) error
}

type boltDraftRepository struct {
	store *storage.Store
}

func NewDraftRepository(store *storage.Store) DraftRepository {
	return &boltDraftRepository{store: store}
}

// Load returns the saved draft, or nil when none exists. A malformed draft is
// logged and treated as absent.
func (r *boltDraftRepository) Load(ctx context.Context) (*Draft, error) {
	raw, err := r.store.Get(storage.DraftKey)
	if err != nil {
		return nil, fmt.Errorf("cart: failed to load draft: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		log.Warn().Err(err).Msg("cart: malformed draft data, treating as absent")
		return nil, nil
	}
	return &draft, nil
}

func (r *boltDraftRepository) Save(ctx context.Context, draft *Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("cart: failed to encode draft: %w", err)
	}
	if err := r.store.Put(storage.DraftKey, raw); err != nil {
		return fmt.Errorf("cart: failed to save draft: %w", err)
	}
	return nil
}

func (r *boltDraftRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(storage.DraftKey); err != nil {
		return fmt.Errorf("cart: failed to clear draft: %w", err)
	}
	return nil
}
