package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ssanjae/offline-orders/internal/cart"
	"github.com/ssanjae/offline-orders/internal/catalog"
	"github.com/ssanjae/offline-orders/internal/confirm"
	"github.com/ssanjae/offline-orders/internal/export"
	"github.com/ssanjae/offline-orders/internal/order"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrEmptyDraft),
		errors.Is(err, order.ErrBuyerNameRequired),
		errors.Is(err, order.ErrBuyerPhoneRequired),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidStatusTransition),
		errors.Is(err, catalog.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, cart.ErrEmptySelection),
		errors.Is(err, export.ErrNoOrders),
		errors.Is(err, confirm.ErrDeclined):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// confirmFlag turns the client's explicit confirm flag into a Confirmer. A
// declined confirmation aborts the operation with no state change.
func confirmFlag(confirmed bool) confirm.Confirmer {
	if confirmed {
		return confirm.Always
	}
	return confirm.Never
}
