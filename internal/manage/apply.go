package manage

import (
	"context"

	"github.com/danmuck/iloctl/internal/redfish"
)

type attributesPayload struct {
	Attributes map[string]any `json:"Attributes"`
}

// ApplyAttributes writes the diff to uri as a partial update and reports
// the attribute family's advisory message on success. Callers must not
// invoke it with an empty diff; the no-write path is theirs to report.
func ApplyAttributes(ctx context.Context, t redfish.Transport, uri string, diff map[string]any, advisory string) (Result, error) {
	resp, err := t.Patch(ctx, uri, attributesPayload{Attributes: diff})
	if err != nil {
		return Result{}, err
	}
	if !resp.OK() {
		return Result{}, &UpstreamApplyError{URI: uri, Status: resp.Status, Body: resp.Body}
	}
	return Result{Changed: true, Msg: advisory}, nil
}
