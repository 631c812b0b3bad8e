package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ssanjae/offline-orders/internal/catalog"
)

// ErrEmptySelection blocks checkout when no quantity is above zero.
var ErrEmptySelection = errors.New("no products selected")

// Line is one selected product annotated with its computed line total.
type Line struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal int    `json:"lineTotal"`
}

// Draft is the selection snapshot handed to checkout.
type Draft struct {
	Items      []Line    `json:"items"`
	TotalPrice int       `json:"totalPrice"`
	SavedAt    time.Time `json:"savedAt"`
}

// Cart accumulates the buyer's chosen quantities per product id. Selection and
// totals are always derived from the current quantities and the catalog, never
// cached.
type Cart struct {
	mu         sync.Mutex
	quantities map[string]int
	drafts     DraftRepository
}

func New(drafts DraftRepository) *Cart {
	return &Cart{
		quantities: make(map[string]int),
		drafts:     drafts,
	}
}

// SetQuantity adjusts a product's quantity by delta and returns the new value.
// Quantities are clamped at a floor of 0; there is no ceiling.
func (c *Cart) SetQuantity(productID string, delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.quantities[productID] + delta
	if next < 0 {
		next = 0
	}
	c.quantities[productID] = next
	return next
}

func (c *Cart) Quantity(productID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quantities[productID]
}

// SelectedItems derives the products with quantity > 0, in catalog order, each
// annotated with its line total.
func (c *Cart) SelectedItems(products []catalog.Product) []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Line, 0, len(products))
	for _, p := range products {
		qty := c.quantities[p.ID]
		if qty <= 0 {
			continue
		}
		items = append(items, Line{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  qty,
			LineTotal: p.Price * qty,
		})
	}
	return items
}

// TotalPrice sums all line totals for the current selection.
func (c *Cart) TotalPrice(products []catalog.Product) int {
	total := 0
	for _, item := range c.SelectedItems(products) {
		total += item.LineTotal
	}
	return total
}

// Commit writes the current selection snapshot to the transient draft slot and
// returns it. An empty selection refuses the checkout with ErrEmptySelection.
func (c *Cart) Commit(ctx context.Context, products []catalog.Product) (*Draft, error) {
	items := c.SelectedItems(products)
	if len(items) == 0 {
		return nil, ErrEmptySelection
	}

	total := 0
	for _, item := range items {
		total += item.LineTotal
	}

	draft := &Draft{
		Items:      items,
		TotalPrice: total,
		SavedAt:    time.Now().UTC(),
	}
	if err := c.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("cart: failed to save draft: %w", err)
	}
	return draft, nil
}

// Reset clears all quantities and removes any stale draft, the way the home
// screen starts a fresh order.
func (c *Cart) Reset(ctx context.Context) {
	c.mu.Lock()
	c.quantities = make(map[string]int)
	c.mu.Unlock()

	if err := c.drafts.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("cart: failed to clear draft")
	}
}
