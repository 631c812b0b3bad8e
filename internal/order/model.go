package order

import "time"

// Item is one ledger line copied from the checkout draft. Items are immutable
// once the order is created.
type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Order is one record in the ledger. TotalPrice equals the sum of the item
// line totals at creation time and is never recomputed.
type Order struct {
	ID         string    `json:"id"`
	BuyerName  string    `json:"buyerName"`
	BuyerPhone string    `json:"buyerPhone"`
	Memo       string    `json:"memo"`
	Items      []Item    `json:"items"`
	TotalPrice int       `json:"totalPrice"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}
