package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/ssanjae/offline-orders/internal/export"
	"github.com/ssanjae/offline-orders/internal/order"
)

type CreateOrderRequest struct {
	BuyerName  string `json:"buyer_name"`
	BuyerPhone string `json:"buyer_phone"`
	Memo       string `json:"memo" validate:"max=1000"`
}

type SetStatusRequest struct {
	Status  string `json:"status" validate:"required,oneof=pending paid cancelled"`
	Confirm bool   `json:"confirm"`
}

// OrderResponse is the ledger record plus its presentation fields: the status
// label and the dash-formatted phone number shown on the admin screen.
type OrderResponse struct {
	ID             string       `json:"id"`
	BuyerName      string       `json:"buyerName"`
	BuyerPhone     string       `json:"buyerPhone"`
	FormattedPhone string       `json:"formattedPhone"`
	Memo           string       `json:"memo"`
	Items          []order.Item `json:"items"`
	TotalPrice     int          `json:"totalPrice"`
	Status         order.Status `json:"status"`
	StatusLabel    string       `json:"statusLabel"`
	CreatedAt      time.Time    `json:"createdAt"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		BuyerName:      o.BuyerName,
		BuyerPhone:     o.BuyerPhone,
		FormattedPhone: order.FormatPhone(o.BuyerPhone),
		Memo:           o.Memo,
		Items:          o.Items,
		TotalPrice:     o.TotalPrice,
		Status:         o.Status,
		StatusLabel:    o.Status.Label(),
		CreatedAt:      o.CreatedAt,
	}
}

type OrderHandler struct {
	service    order.Service
	validate   *validator.Validate
	exportOpts export.Options
}

func NewOrderHandler(service order.Service, exportOpts export.Options) *OrderHandler {
	return &OrderHandler{
		service:    service,
		validate:   validator.New(),
		exportOpts: exportOpts,
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Post("/orders", h.handleCreateOrder)
	router.Get("/orders", h.handleListOrders)
	router.Get("/orders/export", h.handleExport)
	router.Get("/orders/{id}", h.handleGetOrder)
	router.Patch("/orders/{id}/status", h.handleSetStatus)
	router.Delete("/orders/{id}", h.handleDeleteOrder)
}

func (h *OrderHandler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request payload: %v", err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid order payload")
		return
	}

	created, err := h.service.CreateOrder(r.Context(), req.BuyerName, req.BuyerPhone, req.Memo)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusCreated, toOrderResponse(created))
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toOrderResponse(&orders[i]))
	}
	respondWithJSON(w, http.StatusOK, responses)
}

func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, err := h.service.GetOrderByID(r.Context(), id)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request payload: %v", err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "status must be one of pending, paid, cancelled")
		return
	}

	o, err := h.service.SetStatus(r.Context(), id, order.Status(req.Status), confirmFlag(req.Confirm))
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	confirmer := confirmFlag(r.URL.Query().Get("confirm") == "true")

	if err := h.service.DeleteOrder(r.Context(), id, confirmer); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	data, err := export.Orders(orders, h.exportOpts)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error().Err(err).Msg("failed to write CSV export")
	}
}
