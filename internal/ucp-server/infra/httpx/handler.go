package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	catalogapp "github.com/jcmexdev/ucp-commerce/internal/catalog-service/app"
	"github.com/jcmexdev/ucp-commerce/internal/pkg/ucp"
	"github.com/jcmexdev/ucp-commerce/internal/ucp-server/core/ports"
	"github.com/jcmexdev/ucp-commerce/internal/ucp-server/profile"
)

const maxBodyBytes = 1 << 20

// Handler serves the discovery, catalog and checkout endpoints.
type Handler struct {
	checkout ports.CheckoutService
	catalog  ports.Catalog
	profile  profile.Profile
}

func NewHandler(checkout ports.CheckoutService, catalog ports.Catalog, prof profile.Profile) *Handler {
	return &Handler{
		checkout: checkout,
		catalog:  catalog,
		profile:  prof,
	}
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Message: "UCP Business Server",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"profile":  "/.well-known/ucp",
			"products": "/products",
			"checkout": "/checkout-sessions",
		},
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.profile)
}

// ListProducts supports the optional query and category filters.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products := h.catalog.Search(r.Context(), q.Get("query"), q.Get("category"))

	writeJSON(w, http.StatusOK, ProductListResponse{
		UCP:      ucp.NewResponseHeader(ucp.CapabilityProductDiscovery),
		Products: products,
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.catalog.Get(r.Context(), id)
	if errors.Is(err, catalogapp.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, codeNotFound, "Product not found")
		return
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ProductResponse{
		UCP:     ucp.NewResponseHeader(ucp.CapabilityProductDiscovery),
		Product: *product,
	})
}

func (h *Handler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckoutRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidJSON, err.Error())
		return
	}

	slog.InfoContext(r.Context(), "creating checkout session",
		"request_id", ucp.FromContext(r.Context(), ucp.ContextKeyRequestID),
		"ucp_agent", ucp.FromContext(r.Context(), ucp.ContextKeyUCPAgent),
		"line_items", len(req.LineItems))

	session, err := h.checkout.Create(r.Context(), toCreateRequest(req))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapCheckoutToResponse(session, h.paymentHandlerID()))
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := h.checkout.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCheckoutToResponse(session, h.paymentHandlerID()))
}

func (h *Handler) UpdateCheckout(w http.ResponseWriter, r *http.Request) {
	var req UpdateCheckoutRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidJSON, err.Error())
		return
	}

	session, err := h.checkout.Update(r.Context(), chi.URLParam(r, "id"), toUpdateRequest(req))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCheckoutToResponse(session, h.paymentHandlerID()))
}

// CompleteCheckout accepts an empty body, which pays with the default token.
func (h *Handler) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	var req CompleteCheckoutRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidJSON, err.Error())
		return
	}

	session, err := h.checkout.Complete(r.Context(), chi.URLParam(r, "id"), toCompleteRequest(req))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCheckoutToResponse(session, h.paymentHandlerID()))
}

func (h *Handler) paymentHandlerID() string {
	if len(h.profile.Payment.Handlers) == 0 {
		return ""
	}
	return h.profile.Payment.Handlers[0].ID
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if allowEmpty && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
