// Package ucp holds the protocol constants shared by the server packages:
// the protocol version, capability names, recognised request headers and the
// context keys under which their values travel.
package ucp

const Version = "2026-01-11"

const (
	CapabilityProductDiscovery = "dev.ucp.shopping.product_discovery"
	CapabilityCheckout         = "dev.ucp.shopping.checkout"
)

const (
	HeaderUCPAgent         = "UCP-Agent"
	HeaderRequestSignature = "request-signature"
	HeaderIdempotencyKey   = "idempotency-key"
	HeaderRequestID        = "request-id"

	// HeaderIdempotentReplayed marks a response served from the idempotency cache.
	HeaderIdempotentReplayed = "Idempotent-Replayed"
)

// contextKey is an unexported type for context keys in this package.
// Using a custom type prevents collisions with keys from other packages
// that might use the same underlying string value.
type contextKey string

const (
	ContextKeyUCPAgent         contextKey = HeaderUCPAgent
	ContextKeyRequestSignature contextKey = HeaderRequestSignature
	ContextKeyIdempotencyKey   contextKey = HeaderIdempotencyKey
	ContextKeyRequestID        contextKey = HeaderRequestID
)
