package middlewares

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/ucp-commerce/internal/pkg/ucp"
)

// AttachUCPHeaders copies the UCP request headers into the context and echoes
// the request id. Signatures are carried along but never verified. Without a
// request-id header the id generated by middleware.RequestID is used.
func AttachUCPHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(ucp.HeaderRequestID)
		if requestID == "" {
			requestID = middleware.GetReqID(r.Context())
		}

		ctx := context.WithValue(r.Context(), ucp.ContextKeyRequestID, requestID)
		ctx = context.WithValue(ctx, ucp.ContextKeyUCPAgent, r.Header.Get(ucp.HeaderUCPAgent))
		ctx = context.WithValue(ctx, ucp.ContextKeyRequestSignature, r.Header.Get(ucp.HeaderRequestSignature))
		ctx = context.WithValue(ctx, ucp.ContextKeyIdempotencyKey, r.Header.Get(ucp.HeaderIdempotencyKey))

		if requestID != "" {
			w.Header().Set(ucp.HeaderRequestID, requestID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
