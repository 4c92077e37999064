package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/iloctl/internal/manage"
	"github.com/danmuck/iloctl/internal/observability"
	"github.com/danmuck/iloctl/internal/redfish"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "biosctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("biosctl", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a TOML invocation config")
	baseURI := fs.String("baseuri", "", "controller base URI")
	username := fs.String("username", "", "controller username")
	password := fs.String("password", "", "controller password")
	authToken := fs.String("auth-token", "", "pre-established session token")
	timeout := fs.Int("timeout", 0, "request timeout in seconds")
	insecure := fs.Bool("insecure", true, "skip TLS certificate verification")
	attrs := attrFlags{}
	fs.Var(attrs, "attr", "service attribute as name=value, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	observability.InitLogger("biosctl")

	inv := defaultInvocation()
	if *configPath != "" {
		loaded, err := loadInvocation(*configPath)
		if err != nil {
			return err
		}
		inv = loaded
	}

	flagSet := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { flagSet[f.Name] = true })
	if flagSet["baseuri"] {
		inv.Controller.BaseURI = *baseURI
	}
	if flagSet["username"] {
		inv.Controller.Username = *username
	}
	if flagSet["password"] {
		inv.Controller.Password = *password
	}
	if flagSet["auth-token"] {
		inv.Controller.AuthToken = *authToken
	}
	if flagSet["timeout"] {
		inv.Controller.Timeout = *timeout
	}
	if flagSet["insecure"] {
		inv.Controller.Insecure = *insecure
	}
	for name, value := range attrs {
		inv.ServiceAttributes[name] = value
	}

	if err := validateInvocation(inv); err != nil {
		return err
	}

	client, err := redfish.NewClient(inv.Controller.RedfishOptions())
	if err != nil {
		return err
	}

	ctx := context.Background()
	var result manage.Result
	err = redfish.WithSession(ctx, client, func(ctx context.Context) error {
		var runErr error
		result, runErr = manage.ApplyServiceBIOSAttributes(ctx, client, inv.ServiceAttributes)
		return runErr
	})
	if err != nil {
		return err
	}

	return json.NewEncoder(out).Encode(result)
}
