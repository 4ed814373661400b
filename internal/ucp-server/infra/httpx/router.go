package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/ucp-commerce/internal/ucp-server/infra/httpx/middlewares"
)

// NewRouter mounts every endpoint. Mutating checkout routes go through
// idempotency, which is a pass-through when idempotency is nil.
func NewRouter(handler *Handler, idempotency func(http.Handler) http.Handler) http.Handler {
	if idempotency == nil {
		idempotency = func(next http.Handler) http.Handler { return next }
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachUCPHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", handler.Root)
	r.Get("/health", handler.Health)
	r.Get("/.well-known/ucp", handler.Profile)

	r.Get("/products", handler.ListProducts)
	r.Get("/products/{id}", handler.GetProduct)

	r.Route("/checkout-sessions", func(r chi.Router) {
		r.With(idempotency).Post("/", handler.CreateCheckout)
		r.Get("/{id}", handler.GetCheckout)
		r.With(idempotency).Put("/{id}", handler.UpdateCheckout)
		r.With(idempotency).Post("/{id}/complete", handler.CompleteCheckout)
	})
	return r
}
