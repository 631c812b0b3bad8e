package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/ssanjae/offline-orders/internal/catalog"
)

type EditFieldRequest struct {
	Field string `json:"field" validate:"required,oneof=name price stock"`
	Value string `json:"value"`
}

type CatalogHandler struct {
	service  catalog.Service
	validate *validator.Validate
}

func NewCatalogHandler(service catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *CatalogHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Put("/admin/products", h.handleSaveAll)
	router.Post("/admin/products", h.handleAddRow)
	router.Patch("/admin/products/{id}", h.handleEditField)
	router.Delete("/admin/products/{id}", h.handleDeleteRow)
}

func (h *CatalogHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) handleSaveAll(w http.ResponseWriter, r *http.Request) {
	var products []catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&products); err != nil {
		log.Error().Err(err).Msg("failed to decode products payload")
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request payload: %v", err))
		return
	}

	h.service.SaveAll(r.Context(), products)
	respondWithJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) handleAddRow(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.AddRow(r.Context())
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusCreated, products)
}

func (h *CatalogHandler) handleEditField(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req EditFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request payload: %v", err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "field must be one of name, price, stock")
		return
	}

	products, err := h.service.EditField(r.Context(), id, req.Field, req.Value)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	confirmer := confirmFlag(r.URL.Query().Get("confirm") == "true")

	products, err := h.service.DeleteRow(r.Context(), id, confirmer)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}
