package server

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tracknstock/internal/config"
	"tracknstock/internal/observability"
	"tracknstock/internal/product/controller"
	"tracknstock/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger    *zap.Logger
	Config    config.ServerConfig
	Inventory *controller.InventoryController
	Metrics   *observability.Metrics
}

func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()
	for _, mw := range middlewareStack(params.Config, params.Logger) {
		r.Use(mw)
	}
	r.Use(params.Metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", params.Metrics.Handler())

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", zap.Error(err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	r.Get("/", params.Inventory.Index)
	r.Get("/export", params.Inventory.Export)
	r.Group(func(r chi.Router) {
		r.Use(mutationLimiter(params.Config.RateLimit))
		r.Post("/products", params.Inventory.Create)
		r.Post("/products/{id}", params.Inventory.Update)
		r.Post("/products/{id}/delete", params.Inventory.Delete)
	})

	return r
}

func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
