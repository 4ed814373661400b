package store

import (
	"errors"

	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"
)

var (
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrSessionExists   = errors.New("checkout session already exists")
)

// MutateFunc edits a working copy of a session. Returning an error discards the copy.
type MutateFunc func(session *domain.CheckoutSession) error

// SessionStore owns checkout session records. Implementations must serialise
// Update calls for the same id and hand out copies, never the stored record.
type SessionStore interface {
	Insert(session *domain.CheckoutSession) error
	Get(id string) (*domain.CheckoutSession, error)
	Update(id string, fn MutateFunc) (*domain.CheckoutSession, error)
	Len() int
}
