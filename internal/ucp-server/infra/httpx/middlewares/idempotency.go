package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/ucp-commerce/internal/pkg/cache"
	"github.com/jcmexdev/ucp-commerce/internal/pkg/ucp"
)

// pendingResponse holds a reserved key until the first request finishes.
const pendingResponse = "pending"

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Idempotency replays the stored response for a repeated idempotency-key on
// the same method and path. The key is reserved with SetNX before next runs,
// and a duplicate arriving while the first request is in flight gets 409.
// Requests without the header, and all requests while the cache is failing,
// go straight to next. 5xx responses release the key so a retry can succeed.
func Idempotency(c cache.Cache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(ucp.HeaderIdempotencyKey)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			cacheKey := c.GenerateKey(r.Method+" "+r.URL.Path, key)

			reserved, err := c.SetNX(ctx, cacheKey, pendingResponse, ttl)
			if err != nil {
				slog.WarnContext(ctx, "idempotency key reservation failed", "key", cacheKey, "error", err)
			}
			if err == nil && !reserved {
				if replay(w, r, c, cacheKey) {
					return
				}
			}

			stored := false
			if reserved {
				defer func() {
					if stored {
						return
					}
					if err := c.Delete(context.WithoutCancel(ctx), cacheKey); err != nil {
						slog.WarnContext(ctx, "idempotency key release failed", "key", cacheKey, "error", err)
					}
				}()
			}

			var body bytes.Buffer
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&body)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if status >= http.StatusInternalServerError {
				return
			}

			raw, err := json.Marshal(storedResponse{
				Status:      status,
				ContentType: ww.Header().Get("Content-Type"),
				Body:        body.Bytes(),
			})
			if err != nil {
				return
			}
			if err := c.Set(ctx, cacheKey, raw, ttl); err != nil {
				slog.WarnContext(ctx, "idempotency cache write failed", "key", cacheKey, "error", err)
				return
			}
			stored = true
		})
	}
}

// replay answers a request whose key is already taken. It returns false when
// there is nothing usable under the key, leaving the request to run normally.
func replay(w http.ResponseWriter, r *http.Request, c cache.Cache, cacheKey string) bool {
	ctx := r.Context()
	cached, err := c.Get(ctx, cacheKey)
	if err != nil {
		slog.WarnContext(ctx, "idempotency cache read failed", "key", cacheKey, "error", err)
		return false
	}

	if cached == pendingResponse {
		slog.InfoContext(ctx, "idempotent request still in progress", "key", cacheKey)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(errorBody{
			Error:   "idempotency_in_progress",
			Message: "a request with this idempotency-key is still being processed",
		})
		return true
	}

	var stored storedResponse
	if cached == "" || json.Unmarshal([]byte(cached), &stored) != nil {
		return false
	}
	slog.InfoContext(ctx, "replaying idempotent response", "key", cacheKey, "status", stored.Status)
	if stored.ContentType != "" {
		w.Header().Set("Content-Type", stored.ContentType)
	}
	w.Header().Set(ucp.HeaderIdempotentReplayed, "true")
	w.WriteHeader(stored.Status)
	_, _ = w.Write(stored.Body)
	return true
}
