// Package redfish is the transport layer for one out-of-band controller:
// session login/logout and raw GET/PATCH against its Redfish root.
//
// It carries no reconciliation logic; that lives in internal/manage.
package redfish

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/iloctl/internal/observability"
	"github.com/rs/zerolog/log"
)

const sessionsPath = "/redfish/v1/SessionService/Sessions/"

const DefaultTimeout = 10 * time.Second

// Transport is the surface the reconciliation core depends on.
type Transport interface {
	Get(ctx context.Context, path string) (Response, error)
	Patch(ctx context.Context, path string, body any) (Response, error)
}

// Options configures a Client for one controller.
//
// Exactly one of Username+Password or AuthToken must be set. Certificate
// verification is off unless TLSVerify is set; iLO ships with self-signed
// certificates.
type Options struct {
	BaseURI   string
	Username  string
	Password  string
	AuthToken string
	Timeout   time.Duration
	TLSVerify bool
}

// Client issues authenticated requests against a single controller.
type Client struct {
	baseURI string
	timeout time.Duration
	http    *http.Client

	loginUser string
	loginPass string

	token         string
	externalToken bool
	sessionURI    string
}

var _ Transport = (*Client)(nil)

func NewClient(opts Options) (*Client, error) {
	base := strings.TrimSpace(opts.BaseURI)
	if base == "" {
		return nil, fmt.Errorf("redfish: baseuri required")
	}
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	base = strings.TrimRight(base, "/")

	hasCreds := opts.Username != "" || opts.Password != ""
	hasToken := opts.AuthToken != ""
	switch {
	case hasCreds && hasToken:
		return nil, fmt.Errorf("redfish: username and auth token are mutually exclusive")
	case hasCreds && (opts.Username == "" || opts.Password == ""):
		return nil, fmt.Errorf("redfish: username and password are required together")
	case !hasCreds && !hasToken:
		return nil, fmt.Errorf("redfish: credentials or auth token required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURI: base,
		timeout: timeout,
		http: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: !opts.TLSVerify},
			},
		},
	}
	if hasToken {
		c.token = opts.AuthToken
		c.externalToken = true
	} else {
		c.loginUser = opts.Username
		c.loginPass = opts.Password
	}
	return c, nil
}

// Login establishes a controller session. A no-op when the client was
// constructed with a pre-supplied token.
func (c *Client) Login(ctx context.Context) error {
	if c.externalToken {
		return nil
	}
	body := map[string]string{
		"UserName": c.loginUser,
		"Password": c.loginPass,
	}
	resp, header, err := c.do(ctx, http.MethodPost, sessionsPath, body)
	if err != nil {
		observability.RecordSessionEvent("login", false)
		return fmt.Errorf("redfish: login: %w", err)
	}
	if !resp.OK() {
		observability.RecordSessionEvent("login", false)
		return fmt.Errorf("redfish: login failed, Status: %d, Response: %s", resp.Status, resp.Body)
	}
	token := header.Get("X-Auth-Token")
	if token == "" {
		observability.RecordSessionEvent("login", false)
		return fmt.Errorf("redfish: login response missing X-Auth-Token header")
	}
	c.token = token
	c.sessionURI = header.Get("Location")
	observability.RecordSessionEvent("login", true)
	return nil
}

// Logout deletes the session established by Login. No-op for external
// tokens and clients that never logged in.
func (c *Client) Logout(ctx context.Context) error {
	if c.externalToken || c.sessionURI == "" {
		return nil
	}
	uri := c.sessionURI
	c.sessionURI = ""
	resp, _, err := c.do(ctx, http.MethodDelete, uri, nil)
	if err != nil {
		observability.RecordSessionEvent("logout", false)
		return fmt.Errorf("redfish: logout: %w", err)
	}
	if !resp.OK() {
		observability.RecordSessionEvent("logout", false)
		return fmt.Errorf("redfish: logout failed, Status: %d, Response: %s", resp.Status, resp.Body)
	}
	c.token = ""
	observability.RecordSessionEvent("logout", true)
	return nil
}

func (c *Client) Get(ctx context.Context, path string) (Response, error) {
	resp, _, err := c.do(ctx, http.MethodGet, path, nil)
	return resp, err
}

func (c *Client) Patch(ctx context.Context, path string, body any) (Response, error) {
	resp, _, err := c.do(ctx, http.MethodPatch, path, body)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, body any) (Response, http.Header, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Response{}, nil, fmt.Errorf("redfish: marshal %s body: %w", method, err)
		}
		reader = bytes.NewReader(payload)
	}

	url := c.url(path)
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return Response{}, nil, fmt.Errorf("redfish: build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("X-Auth-Token", c.token)
	}

	start := time.Now()
	httpResp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Str("method", method).Str("path", path).Err(err).Msg("redfish_request_failed")
		return Response{}, nil, fmt.Errorf("redfish: %s %s: %w", method, path, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, nil, fmt.Errorf("redfish: read %s %s response: %w", method, path, err)
	}

	duration := time.Since(start)
	observability.RecordRedfishRequest(method, path, httpResp.StatusCode, duration)
	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", httpResp.StatusCode).
		Dur("duration", duration).
		Msg("redfish_request")

	return Response{Status: httpResp.StatusCode, Body: raw}, httpResp.Header, nil
}

func (c *Client) url(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	return c.baseURI + "/" + strings.TrimLeft(path, "/")
}
