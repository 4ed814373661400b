// Package profile builds the business discovery document served at
// /.well-known/ucp.
package profile

import (
	"strings"

	paymentservice "github.com/jcmexdev/ucp-commerce/internal/payment-service/app"
	"github.com/jcmexdev/ucp-commerce/internal/pkg/ucp"
)

const specBaseURL = "https://ucp.dev"

type Config struct {
	ServerURL    string
	BusinessID   string
	BusinessName string
	// SupportedTokens is advertised in the payment handler config.
	SupportedTokens []string
}

type Profile struct {
	UCP      Header   `json:"ucp"`
	Payment  Payment  `json:"payment"`
	Business Business `json:"business"`
}

type Header struct {
	Version      string         `json:"version"`
	Services     map[string]any `json:"services"`
	Capabilities []Capability   `json:"capabilities"`
}

type Capability struct {
	Name     string         `json:"name"`
	Version  string         `json:"version"`
	Spec     string         `json:"spec"`
	Config   map[string]any `json:"config"`
	Bindings []Binding      `json:"bindings"`
}

type Binding struct {
	Type    string   `json:"type"`
	Methods []string `json:"methods"`
	URL     string   `json:"url"`
}

type Payment struct {
	Handlers []PaymentHandler `json:"handlers"`
}

type PaymentHandler struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Version           string         `json:"version"`
	Spec              string         `json:"spec"`
	ConfigSchema      string         `json:"config_schema"`
	InstrumentSchemas []string       `json:"instrument_schemas"`
	Config            map[string]any `json:"config"`
}

type Business struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func Build(cfg Config) Profile {
	base := strings.TrimRight(cfg.ServerURL, "/")

	tokens := cfg.SupportedTokens
	if tokens == nil {
		tokens = []string{paymentservice.TokenSuccess, paymentservice.TokenFail}
	}

	return Profile{
		UCP: Header{
			Version:  ucp.Version,
			Services: map[string]any{},
			Capabilities: []Capability{
				{
					Name:    ucp.CapabilityProductDiscovery,
					Version: ucp.Version,
					Spec:    specBaseURL + "/specs/shopping/product-discovery",
					Config:  map[string]any{},
					Bindings: []Binding{
						{Type: "rest", Methods: []string{"GET"}, URL: base + "/products"},
					},
				},
				{
					Name:    ucp.CapabilityCheckout,
					Version: ucp.Version,
					Spec:    specBaseURL + "/specs/shopping/checkout",
					Config:  map[string]any{},
					Bindings: []Binding{
						{Type: "rest", Methods: []string{"POST", "PUT"}, URL: base + "/checkout-sessions"},
					},
				},
			},
		},
		Payment: Payment{
			Handlers: []PaymentHandler{
				{
					ID:           paymentservice.MockHandlerID,
					Name:         paymentservice.MockHandlerName,
					Version:      ucp.Version,
					Spec:         specBaseURL + "/specs/mock",
					ConfigSchema: specBaseURL + "/schemas/mock.json",
					InstrumentSchemas: []string{
						specBaseURL + "/schemas/shopping/types/card_payment_instrument.json",
					},
					Config: map[string]any{"supported_tokens": tokens},
				},
			},
		},
		Business: Business{
			ID:   cfg.BusinessID,
			Name: cfg.BusinessName,
			URL:  base,
		},
	}
}
