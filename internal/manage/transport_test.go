package manage

import (
	"context"
	"fmt"

	"github.com/danmuck/iloctl/internal/redfish"
)

// stubTransport serves scripted responses keyed by "METHOD uri" and
// records every call in order.
type stubTransport struct {
	responses map[string]redfish.Response
	calls     []string
	patches   map[string]any
}

func newStubTransport() *stubTransport {
	return &stubTransport{
		responses: map[string]redfish.Response{},
		patches:   map[string]any{},
	}
}

func (s *stubTransport) on(method, uri string, status int, body string) {
	s.responses[method+" "+uri] = redfish.Response{Status: status, Body: []byte(body)}
}

func (s *stubTransport) Get(_ context.Context, uri string) (redfish.Response, error) {
	return s.respond("GET", uri)
}

func (s *stubTransport) Patch(_ context.Context, uri string, body any) (redfish.Response, error) {
	s.patches[uri] = body
	return s.respond("PATCH", uri)
}

func (s *stubTransport) respond(method, uri string) (redfish.Response, error) {
	key := method + " " + uri
	s.calls = append(s.calls, key)
	resp, ok := s.responses[key]
	if !ok {
		return redfish.Response{}, fmt.Errorf("stub: unexpected %s", key)
	}
	return resp, nil
}

func (s *stubTransport) countCalls(method, uri string) int {
	n := 0
	for _, call := range s.calls {
		if call == method+" "+uri {
			n++
		}
	}
	return n
}

// withManagerDiscovery scripts the service root and manager collection
// hops used by every manager command.
func (s *stubTransport) withManagerDiscovery() *stubTransport {
	s.on("GET", serviceRootURI, 200, `{"Managers":{"@odata.id":"/redfish/v1/Managers/"}}`)
	s.on("GET", "/redfish/v1/Managers/", 200, `{"Members":[{"@odata.id":"/redfish/v1/Managers/1/"}]}`)
	return s
}
