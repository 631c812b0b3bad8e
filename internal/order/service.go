package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ssanjae/offline-orders/internal/cart"
	"github.com/ssanjae/offline-orders/internal/confirm"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrEmptyDraft              = errors.New("select products before checkout")
	ErrBuyerNameRequired       = errors.New("enter buyer name")
	ErrBuyerPhoneRequired      = errors.New("enter buyer phone")
	ErrInvalidStatus           = errors.New("unknown order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

type Service interface {
	CreateOrder(ctx context.Context, buyerName, buyerPhone, memo string) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	SetStatus(ctx context.Context, id string, newStatus Status, confirmer confirm.Confirmer) (*Order, error)
	DeleteOrder(ctx context.Context, id string, confirmer confirm.Confirmer) error
}

type service struct {
	repo   Repository
	drafts cart.DraftRepository
}

func NewService(repo Repository, drafts cart.DraftRepository) Service {
	return &service{repo: repo, drafts: drafts}
}

// CreateOrder finalizes the saved checkout draft into a pending ledger record.
// Validation failures report the specific missing field and write nothing.
// The draft slot is consumed on success.
func (s *service) CreateOrder(ctx context.Context, buyerName, buyerPhone, memo string) (*Order, error) {
	draft, err := s.drafts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("order: failed to load draft: %w", err)
	}
	if draft == nil || len(draft.Items) == 0 {
		return nil, ErrEmptyDraft
	}

	buyerName = strings.TrimSpace(buyerName)
	if buyerName == "" {
		return nil, ErrBuyerNameRequired
	}
	buyerPhone = strings.TrimSpace(buyerPhone)
	if buyerPhone == "" {
		return nil, ErrBuyerPhoneRequired
	}

	memo = strings.TrimSpace(memo)
	if memo == "" {
		memo = "-"
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("order: failed to generate order id: %w", err)
	}

	items := make([]Item, 0, len(draft.Items))
	total := 0
	for _, line := range draft.Items {
		items = append(items, Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
		total += line.Price * line.Quantity
	}

	o := &Order{
		ID:         id.String(),
		BuyerName:  buyerName,
		BuyerPhone: buyerPhone,
		Memo:       memo,
		Items:      items,
		TotalPrice: total,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Append(ctx, o); err != nil {
		log.Error().Err(err).Msg("order: failed to append order to ledger")
		return nil, fmt.Errorf("order: failed to create order: %w", err)
	}

	if err := s.drafts.Clear(ctx); err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Msg("order: failed to clear draft after checkout")
	}

	log.Info().Str("order_id", o.ID).Int("total_price", o.TotalPrice).Msg("order created")
	return o, nil
}

func (s *service) ListOrders(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *service) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// SetStatus transitions an order's status. Setting the status it already has
// is a no-op; cancellation asks for confirmation first.
func (s *service) SetStatus(ctx context.Context, id string, newStatus Status, confirmer confirm.Confirmer) (*Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, newStatus)
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.Status == newStatus {
		return o, nil
	}

	if !CanTransition(o.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, newStatus)
	}

	if newStatus == StatusCancelled {
		if !confirmer.Confirm("cancel-order", o.BuyerName) {
			return nil, confirm.ErrDeclined
		}
	}

	o.Status = newStatus
	if err := s.repo.Update(ctx, o); err != nil {
		log.Error().Err(err).Str("order_id", id).Msg("order: failed to update status")
		return nil, fmt.Errorf("order: failed to update status: %w", err)
	}

	log.Info().Str("order_id", id).Str("status", string(newStatus)).Msg("order status updated")
	return o, nil
}

// DeleteOrder permanently removes a record after confirmation.
func (s *service) DeleteOrder(ctx context.Context, id string, confirmer confirm.Confirmer) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !confirmer.Confirm("delete-order", o.BuyerName) {
		return confirm.ErrDeclined
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("order_id", id).Msg("order: failed to delete order")
		return fmt.Errorf("order: failed to delete order: %w", err)
	}

	log.Info().Str("order_id", id).Msg("order deleted")
	return nil
}
