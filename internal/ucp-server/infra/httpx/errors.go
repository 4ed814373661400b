package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"
)

const (
	codeInvalidJSON     = "invalid_json"
	codeValidation      = "validation_error"
	codeNotFound        = "not_found"
	codeInvalidState    = "invalid_state"
	codePaymentDeclined = "payment_declined"
	codeInternal        = "internal_error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}

// writeDomainError maps a checkout error to its HTTP status. Anything that is
// not a *domain.Error is logged and reported as a 500 without its details.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		slog.ErrorContext(r.Context(), "unexpected checkout error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
		return
	}

	switch de.Kind {
	case domain.KindValidation:
		writeError(w, http.StatusBadRequest, codeValidation, de.Message)
	case domain.KindNotFound:
		writeError(w, http.StatusNotFound, codeNotFound, de.Message)
	case domain.KindInvalidState:
		writeError(w, http.StatusConflict, codeInvalidState, de.Message)
	case domain.KindPaymentDeclined:
		writeError(w, http.StatusPaymentRequired, codePaymentDeclined, de.Message)
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, de.Message)
	}
}
