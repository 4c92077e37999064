package redfish

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danmuck/iloctl/internal/redfishtest"
	"github.com/danmuck/iloctl/internal/testutil/testlog"
)

func TestNewClientValidatesOptions(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		name string
		opts Options
	}{
		{"missing baseuri", Options{Username: "a", Password: "b"}},
		{"no credentials", Options{BaseURI: "192.168.1.45"}},
		{"creds and token", Options{BaseURI: "192.168.1.45", Username: "a", Password: "b", AuthToken: "t"}},
		{"username without password", Options{BaseURI: "192.168.1.45", Username: "a"}},
	}
	for _, tc := range cases {
		if _, err := NewClient(tc.opts); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestNewClientNormalizesBaseURI(t *testing.T) {
	testlog.Start(t)

	c, err := NewClient(Options{BaseURI: "192.168.1.45", AuthToken: "tok"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if c.baseURI != "https://192.168.1.45" {
		t.Fatalf("unexpected baseuri: %q", c.baseURI)
	}

	c, err = NewClient(Options{BaseURI: "http://10.0.0.1/", AuthToken: "tok"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if c.baseURI != "http://10.0.0.1" {
		t.Fatalf("explicit scheme must be honored: %q", c.baseURI)
	}
}

func TestNewClientSkipsTLSVerificationByDefault(t *testing.T) {
	testlog.Start(t)

	// The simulator presents a self-signed certificate; a zero-value
	// TLSVerify must still connect, matching how controllers ship.
	sim := redfishtest.New()
	sim.StaticToken = "tok"
	srv := sim.Start()
	defer srv.Close()

	c, err := NewClient(Options{BaseURI: srv.URL, AuthToken: "tok"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	resp, err := c.Get(context.Background(), "/redfish/v1/")
	if err != nil {
		t.Fatalf("get against self-signed endpoint: %v", err)
	}
	if !resp.OK() {
		t.Fatalf("unexpected status: %d", resp.Status)
	}

	verifying, err := NewClient(Options{BaseURI: srv.URL, AuthToken: "tok", TLSVerify: true})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := verifying.Get(context.Background(), "/redfish/v1/"); err == nil {
		t.Fatalf("verification enabled must reject the self-signed certificate")
	}
}

func TestClientSessionLifecycle(t *testing.T) {
	testlog.Start(t)

	sim := redfishtest.New()
	srv := sim.Start()
	defer srv.Close()

	c, err := NewClient(Options{
		BaseURI:  srv.URL,
		Username: sim.Username,
		Password: sim.Password,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ctx := context.Background()
	if err := c.Login(ctx); err != nil {
		t.Fatalf("login: %v", err)
	}
	if sim.SessionCount() != 1 {
		t.Fatalf("expected one live session, got %d", sim.SessionCount())
	}

	resp, err := c.Get(ctx, "/redfish/v1/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !resp.OK() {
		t.Fatalf("unexpected status: %d", resp.Status)
	}

	if err := c.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sim.SessionCount() != 0 {
		t.Fatalf("expected session deleted, got %d", sim.SessionCount())
	}
	// Idempotent once the session is gone.
	if err := c.Logout(ctx); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestClientLoginRejectedCredentials(t *testing.T) {
	testlog.Start(t)

	sim := redfishtest.New()
	srv := sim.Start()
	defer srv.Close()

	c, err := NewClient(Options{
		BaseURI:  srv.URL,
		Username: sim.Username,
		Password: "wrong",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := c.Login(context.Background()); err == nil {
		t.Fatalf("expected login failure")
	}
}

func TestClientExternalTokenSkipsSession(t *testing.T) {
	testlog.Start(t)

	sim := redfishtest.New()
	sim.StaticToken = "prearranged"
	srv := sim.Start()
	defer srv.Close()

	c, err := NewClient(Options{
		BaseURI:   srv.URL,
		AuthToken: "prearranged",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ctx := context.Background()
	if err := c.Login(ctx); err != nil {
		t.Fatalf("login must be a no-op: %v", err)
	}
	if sim.SessionCount() != 0 {
		t.Fatalf("no session may be created for external tokens, got %d", sim.SessionCount())
	}
	resp, err := c.Get(ctx, "/redfish/v1/Systems/1/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !resp.OK() {
		t.Fatalf("unexpected status: %d", resp.Status)
	}
	if err := c.Logout(ctx); err != nil {
		t.Fatalf("logout must be a no-op: %v", err)
	}
}

func TestWithSessionReleasesOnError(t *testing.T) {
	testlog.Start(t)

	sim := redfishtest.New()
	srv := sim.Start()
	defer srv.Close()

	c, err := NewClient(Options{
		BaseURI:  srv.URL,
		Username: sim.Username,
		Password: sim.Password,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	wantErr := errors.New("operation failed")
	err = WithSession(context.Background(), c, func(ctx context.Context) error {
		if sim.SessionCount() != 1 {
			t.Fatalf("expected live session inside fn, got %d", sim.SessionCount())
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("work error must surface, got %v", err)
	}
	if sim.SessionCount() != 0 {
		t.Fatalf("logout must run on the error path, got %d", sim.SessionCount())
	}
}

func TestClientTimeoutBoundsEachRequest(t *testing.T) {
	testlog.Start(t)

	c, err := NewClient(Options{
		BaseURI:   "10.255.255.1",
		AuthToken: "tok",
		Timeout:   50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	start := time.Now()
	_, err = c.Get(context.Background(), "/redfish/v1/")
	if err == nil {
		t.Fatalf("expected timeout against unroutable address")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("request not bounded by timeout, took %v", elapsed)
	}
}
