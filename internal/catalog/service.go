package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ssanjae/offline-orders/internal/confirm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnknownField    = errors.New("unknown product field")
)

var nonDigits = regexp.MustCompile(`\D`)

type Service interface {
	List(ctx context.Context) ([]Product, error)
	SaveAll(ctx context.Context, products []Product)
	AddRow(ctx context.Context) ([]Product, error)
	EditField(ctx context.Context, id, field, value string) ([]Product, error)
	DeleteRow(ctx context.Context, id string, confirmer confirm.Confirmer) ([]Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("catalog: failed to load products")
		return nil, fmt.Errorf("catalog: failed to load products: %w", err)
	}
	return products, nil
}

// SaveAll persists the full list. It is total: storage failures are logged and
// swallowed, never surfaced to the caller.
func (s *service) SaveAll(ctx context.Context, products []Product) {
	s.persist(ctx, products)
}

// AddRow appends one empty product row and persists the list.
func (s *service) AddRow(ctx context.Context) ([]Product, error) {
	products, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to load products: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to generate product id: %w", err)
	}

	products = append(products, Product{ID: id.String()})
	s.persist(ctx, products)
	return products, nil
}

// EditField updates one field of the product with the given id. Price and
// stock values are stripped to digits before storing; names are stored
// verbatim. There is no uniqueness or minimum-price validation.
func (s *service) EditField(ctx context.Context, id, field, value string) ([]Product, error) {
	products, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to load products: %w", err)
	}

	idx := indexOf(products, id)
	if idx < 0 {
		return nil, ErrProductNotFound
	}

	switch field {
	case "name":
		products[idx].Name = value
	case "stock":
		products[idx].Stock = nonDigits.ReplaceAllString(value, "")
	case "price":
		products[idx].Price = digitsToInt(value)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	s.persist(ctx, products)
	return products, nil
}

// DeleteRow removes the product with the given id after confirmation.
func (s *service) DeleteRow(ctx context.Context, id string, confirmer confirm.Confirmer) ([]Product, error) {
	products, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to load products: %w", err)
	}

	idx := indexOf(products, id)
	if idx < 0 {
		return nil, ErrProductNotFound
	}

	if !confirmer.Confirm("delete-product", products[idx].Name) {
		return nil, confirm.ErrDeclined
	}

	products = append(products[:idx], products[idx+1:]...)
	s.persist(ctx, products)
	return products, nil
}

func (s *service) persist(ctx context.Context, products []Product) {
	if err := s.repo.Save(ctx, products); err != nil {
		log.Error().Err(err).Msg("catalog: failed to save products")
	}
}

func indexOf(products []Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func digitsToInt(value string) int {
	digits := nonDigits.ReplaceAllString(value, "")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
