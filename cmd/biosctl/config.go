package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/iloctl/internal/config"
)

type invocation struct {
	Controller        config.Controller
	ServiceAttributes map[string]any
}

type fileConfig struct {
	BaseURI           string         `toml:"baseuri"`
	Username          string         `toml:"username"`
	Password          string         `toml:"password"`
	AuthToken         string         `toml:"auth_token"`
	Timeout           int            `toml:"timeout"`
	Insecure          bool           `toml:"insecure"`
	ServiceAttributes map[string]any `toml:"service_attributes"`
}

func defaultInvocation() invocation {
	return invocation{
		Controller:        config.DefaultController(),
		ServiceAttributes: map[string]any{},
	}
}

func loadInvocation(path string) (invocation, error) {
	inv := defaultInvocation()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return invocation{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("baseuri") {
		inv.Controller.BaseURI = strings.TrimSpace(raw.BaseURI)
	}
	if meta.IsDefined("username") {
		inv.Controller.Username = raw.Username
	}
	if meta.IsDefined("password") {
		inv.Controller.Password = raw.Password
	}
	if meta.IsDefined("auth_token") {
		inv.Controller.AuthToken = raw.AuthToken
	}
	if meta.IsDefined("timeout") {
		inv.Controller.Timeout = raw.Timeout
	}
	if meta.IsDefined("insecure") {
		inv.Controller.Insecure = raw.Insecure
	}
	if meta.IsDefined("service_attributes") {
		for name, value := range raw.ServiceAttributes {
			inv.ServiceAttributes[name] = value
		}
	}

	return inv, nil
}

func validateInvocation(inv invocation) error {
	if err := config.ValidateController(inv.Controller); err != nil {
		return err
	}
	if len(inv.ServiceAttributes) == 0 {
		return fmt.Errorf("at least one service attribute is required")
	}
	return nil
}

// attrFlags collects repeated -attr name=value pairs.
type attrFlags map[string]any

func (a attrFlags) String() string {
	return fmt.Sprintf("%v", map[string]any(a))
}

func (a attrFlags) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", raw)
	}
	a[name] = value
	return nil
}
