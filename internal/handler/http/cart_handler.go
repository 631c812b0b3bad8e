package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ssanjae/offline-orders/internal/cart"
	"github.com/ssanjae/offline-orders/internal/catalog"
)

type SetQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Delta     int    `json:"delta"`
}

type CartResponse struct {
	Items      []cart.Line `json:"items"`
	TotalPrice int         `json:"totalPrice"`
}

type CartHandler struct {
	cart     *cart.Cart
	catalog  catalog.Service
	validate *validator.Validate
}

func NewCartHandler(c *cart.Cart, catalogService catalog.Service) *CartHandler {
	return &CartHandler{
		cart:     c,
		catalog:  catalogService,
		validate: validator.New(),
	}
}

func (h *CartHandler) RegisterRoutes(router chi.Router) {
	router.Get("/cart", h.handleGetCart)
	router.Post("/cart/quantity", h.handleSetQuantity)
	router.Post("/cart/checkout", h.handleCheckout)
	router.Post("/cart/reset", h.handleReset)
}

func (h *CartHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	respondWithJSON(w, http.StatusOK, CartResponse{
		Items:      h.cart.SelectedItems(products),
		TotalPrice: h.cart.TotalPrice(products),
	})
}

func (h *CartHandler) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request payload: %v", err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	quantity := h.cart.SetQuantity(req.ProductID, req.Delta)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"product_id": req.ProductID,
		"quantity":   quantity,
	})
}

func (h *CartHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	draft, err := h.cart.Commit(r.Context(), products)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusCreated, draft)
}

func (h *CartHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.cart.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
