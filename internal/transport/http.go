package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ssanjae/offline-orders/internal/cart"
	"github.com/ssanjae/offline-orders/internal/catalog"
	"github.com/ssanjae/offline-orders/internal/config"
	"github.com/ssanjae/offline-orders/internal/export"
	handler "github.com/ssanjae/offline-orders/internal/handler/http"
	"github.com/ssanjae/offline-orders/internal/order"
	"github.com/ssanjae/offline-orders/internal/storage"
)

func NewRouter(store *storage.Store, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	catalogRepo := catalog.NewRepository(store)
	catalogSvc := catalog.NewService(catalogRepo)

	drafts := cart.NewDraftRepository(store)
	buyerCart := cart.New(drafts)

	orderRepo := order.NewRepository(store)
	orderSvc := order.NewService(orderRepo, drafts)

	exportOpts := export.Options{
		Delimiter:   cfg.Export.Delimiter,
		BOM:         cfg.Export.BOM,
		ItemColumns: cfg.Export.ItemColumns,
	}

	handler.NewCatalogHandler(catalogSvc).RegisterRoutes(r)
	handler.NewCartHandler(buyerCart, catalogSvc).RegisterRoutes(r)
	handler.NewOrderHandler(orderSvc, exportOpts).RegisterRoutes(r)

	return r
}
