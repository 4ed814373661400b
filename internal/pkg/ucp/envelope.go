package ucp

import "context"

type CapabilityRef struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ResponseHeader is the "ucp" object every response body starts with.
type ResponseHeader struct {
	Version      string          `json:"version"`
	Capabilities []CapabilityRef `json:"capabilities"`
}

func NewResponseHeader(capabilities ...string) ResponseHeader {
	refs := make([]CapabilityRef, len(capabilities))
	for i, name := range capabilities {
		refs[i] = CapabilityRef{Name: name, Version: Version}
	}
	return ResponseHeader{Version: Version, Capabilities: refs}
}

// FromContext returns the header value stored under key, or "" when absent.
func FromContext(ctx context.Context, key contextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}
