// Package config holds the controller connection settings shared by the
// iloctl and biosctl loaders.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/danmuck/iloctl/internal/redfish"
)

// Controller is one out-of-band controller endpoint plus credentials.
// Exactly one of Username+Password or AuthToken must be provided.
type Controller struct {
	BaseURI   string `toml:"baseuri"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	AuthToken string `toml:"auth_token"`
	Timeout   int    `toml:"timeout"`
	Insecure  bool   `toml:"insecure"`
}

func DefaultController() Controller {
	return Controller{
		Timeout:  10,
		Insecure: true,
	}
}

func ValidateController(c Controller) error {
	if strings.TrimSpace(c.BaseURI) == "" {
		return fmt.Errorf("baseuri is required")
	}
	hasCreds := c.Username != "" || c.Password != ""
	hasToken := c.AuthToken != ""
	if hasCreds && hasToken {
		return fmt.Errorf("username and auth_token are mutually exclusive")
	}
	if hasCreds && (c.Username == "" || c.Password == "") {
		return fmt.Errorf("username and password are required together")
	}
	if !hasCreds && !hasToken {
		return fmt.Errorf("username/password or auth_token is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.Timeout)
	}
	return nil
}

func (c Controller) RedfishOptions() redfish.Options {
	return redfish.Options{
		BaseURI:   c.BaseURI,
		Username:  c.Username,
		Password:  c.Password,
		AuthToken: c.AuthToken,
		Timeout:   time.Duration(c.Timeout) * time.Second,
		TLSVerify: !c.Insecure,
	}
}
