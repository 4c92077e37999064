package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/iloctl/internal/config"
)

type invocation struct {
	Controller     config.Controller
	Category       string
	Commands       []string
	AttributeName  string
	AttributeValue string
}

type fileConfig struct {
	BaseURI        string   `toml:"baseuri"`
	Username       string   `toml:"username"`
	Password       string   `toml:"password"`
	AuthToken      string   `toml:"auth_token"`
	Timeout        int      `toml:"timeout"`
	Insecure       bool     `toml:"insecure"`
	Category       string   `toml:"category"`
	Command        []string `toml:"command"`
	AttributeName  string   `toml:"attribute_name"`
	AttributeValue string   `toml:"attribute_value"`
}

func defaultInvocation() invocation {
	return invocation{
		Controller: config.DefaultController(),
		Category:   "Manager",
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
	if meta.IsDefined("category") {
		inv.Category = strings.TrimSpace(raw.Category)
	}
	if meta.IsDefined("command") {
		inv.Commands = normalizeCommands(raw.Command)
	}
	if meta.IsDefined("attribute_name") {
		inv.AttributeName = strings.TrimSpace(raw.AttributeName)
	}
	if meta.IsDefined("attribute_value") {
		inv.AttributeValue = raw.AttributeValue
	}

	return inv, nil
}

func validateInvocation(inv invocation) error {
	if err := config.ValidateController(inv.Controller); err != nil {
		return err
	}
	if inv.Category != "Manager" {
		return fmt.Errorf("unsupported category %q, choose from [Manager]", inv.Category)
	}
	if len(inv.Commands) == 0 {
		return fmt.Errorf("at least one command is required")
	}
	if inv.AttributeName == "" {
		return fmt.Errorf("attribute_name is required")
	}
	return nil
}

func normalizeCommands(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, cmd := range raw {
		cmd = strings.TrimSpace(cmd)
		if cmd != "" {
			out = append(out, cmd)
		}
	}
	return out
}
