package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadExampleConfig(t *testing.T) {
	inv, err := loadInvocation("ex.config.toml")
	if err != nil {
		t.Fatalf("load example config: %v", err)
	}
	if inv.Controller.BaseURI != "192.168.1.45" {
		t.Fatalf("unexpected baseuri: %q", inv.Controller.BaseURI)
	}
	if len(inv.ServiceAttributes) != 2 {
		t.Fatalf("unexpected attributes: %+v", inv.ServiceAttributes)
	}
	if inv.ServiceAttributes["ProcMonitorMwait"] != "Disabled" {
		t.Fatalf("unexpected ProcMonitorMwait: %v", inv.ServiceAttributes["ProcMonitorMwait"])
	}
	if err := validateInvocation(inv); err != nil {
		t.Fatalf("example config must validate: %v", err)
	}
}

func TestLoadInvocationServiceAttributes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
baseuri = "192.168.1.45"
username = "Admin"
password = "Testpass123"

[service_attributes]
ProcMonitorMwait = "Disabled"
MemPreFailureNotification = "Enabled"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	inv, err := loadInvocation(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if inv.Controller.Timeout != 10 {
		t.Fatalf("unexpected timeout default: %d", inv.Controller.Timeout)
	}
	if len(inv.ServiceAttributes) != 2 {
		t.Fatalf("unexpected attributes: %+v", inv.ServiceAttributes)
	}
	if inv.ServiceAttributes["ProcMonitorMwait"] != "Disabled" {
		t.Fatalf("unexpected ProcMonitorMwait: %v", inv.ServiceAttributes["ProcMonitorMwait"])
	}
	if err := validateInvocation(inv); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateInvocationRequiresAttributes(t *testing.T) {
	inv := defaultInvocation()
	inv.Controller.BaseURI = "192.168.1.45"
	inv.Controller.AuthToken = "tok"
	if err := validateInvocation(inv); err == nil {
		t.Fatalf("expected empty service attributes to fail")
	}
}

func TestAttrFlagsParsing(t *testing.T) {
	attrs := attrFlags{}
	if err := attrs.Set("ProcMonitorMwait=Disabled"); err != nil {
		t.Fatalf("set attr: %v", err)
	}
	if err := attrs.Set("bogus"); err == nil {
		t.Fatalf("expected malformed pair to fail")
	}
	if attrs["ProcMonitorMwait"] != "Disabled" {
		t.Fatalf("unexpected value: %v", attrs["ProcMonitorMwait"])
	}
}
