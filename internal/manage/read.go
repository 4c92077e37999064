package manage

import (
	"context"
	"net/http"

	"github.com/danmuck/iloctl/internal/redfish"
)

// ReadAttributes fetches the target's Attributes mapping. A 404 on the
// primary path triggers exactly one retry against the OEM fallback; the
// returned URI is the one that actually answered and is where any update
// must be written. A resource without an Attributes key reads as empty.
func ReadAttributes(ctx context.Context, t redfish.Transport, target Target) (string, map[string]any, error) {
	uri := target.Primary
	resp, err := t.Get(ctx, uri)
	if err != nil {
		return "", nil, err
	}
	if resp.Status == http.StatusNotFound && target.Fallback != "" {
		uri = target.Fallback
		resp, err = t.Get(ctx, uri)
		if err != nil {
			return "", nil, err
		}
	}
	if !resp.OK() {
		return "", nil, &UpstreamRequestError{Method: http.MethodGet, URI: uri, Status: resp.Status, Body: resp.Body}
	}

	var payload struct {
		Attributes map[string]any `json:"Attributes"`
	}
	if err := resp.JSON(&payload); err != nil {
		return "", nil, &UpstreamRequestError{Method: http.MethodGet, URI: uri, Status: resp.Status, Body: resp.Body}
	}
	if payload.Attributes == nil {
		payload.Attributes = map[string]any{}
	}
	return uri, payload.Attributes, nil
}
