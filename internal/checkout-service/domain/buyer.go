package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Buyer struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// Valid reports whether the buyer carries enough information to complete a checkout.
func (b *Buyer) Valid() bool {
	if b == nil {
		return false
	}
	trimmed := Buyer{
		FullName: strings.TrimSpace(b.FullName),
		Email:    strings.TrimSpace(b.Email),
	}
	return validate.Struct(trimmed) == nil
}
