package manage

import (
	"context"
	"fmt"

	"github.com/danmuck/iloctl/internal/redfish"
	"github.com/rs/zerolog/log"
)

// ManagerCommands is the fixed allow-list for the Manager category.
var ManagerCommands = []string{
	"SetTimeZone",
	"SetDNSserver",
	"SetDomainName",
	"SetNTPServers",
	"SetWINSReg",
}

// managerOperation binds one command to the manager sub-resource holding
// its attribute, the OEM variant of that sub-resource, and the advisory
// reported when a write lands.
type managerOperation struct {
	subpath  string
	fallback string
	advisory string
}

var managerOperations = map[string]managerOperation{
	"SetTimeZone": {
		subpath:  "DateTime/",
		fallback: "Oem/Hpe/DateTime/",
		advisory: "Time zone updated. A manager reset may be required for the change to take effect.",
	},
	"SetNTPServers": {
		subpath:  "DateTime/",
		fallback: "Oem/Hpe/DateTime/",
		advisory: "NTP servers updated. A manager reset may be required for the change to take effect.",
	},
	"SetDNSserver": {
		subpath:  "EthernetInterfaces/1/",
		fallback: "Oem/Hpe/EthernetInterfaces/1/",
		advisory: "DNS server updated.",
	},
	"SetDomainName": {
		subpath:  "EthernetInterfaces/1/",
		fallback: "Oem/Hpe/EthernetInterfaces/1/",
		advisory: "Domain name updated. A manager reset may be required for the change to take effect.",
	},
	"SetWINSReg": {
		subpath:  "EthernetInterfaces/1/",
		fallback: "Oem/Hpe/EthernetInterfaces/1/",
		advisory: "WINS registration updated.",
	},
}

// RunManagerCommands validates the whole command list against the
// allow-list before anything executes, then runs each command in caller
// order. Each command independently locates, reads, diffs, and applies its
// single attribute. The returned Result is the last executed command's;
// earlier results are not aggregated. The first failure aborts the rest.
func RunManagerCommands(ctx context.Context, t redfish.Transport, commands []string, attrName string, attrValue any) (Result, error) {
	var offenders []string
	for _, cmd := range commands {
		if _, ok := managerOperations[cmd]; !ok {
			offenders = append(offenders, cmd)
		}
	}
	if len(offenders) > 0 {
		return Result{}, &InvalidCommandError{Offenders: offenders, Allowed: ManagerCommands}
	}

	var result Result
	for _, cmd := range commands {
		op := managerOperations[cmd]
		res, err := runManagerOperation(ctx, t, op, attrName, attrValue)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", cmd, err)
		}
		log.Debug().Str("command", cmd).Bool("changed", res.Changed).Msg("manager_command_done")
		result = res
	}
	return result, nil
}

func runManagerOperation(ctx context.Context, t redfish.Transport, op managerOperation, attrName string, attrValue any) (Result, error) {
	managerURI, err := FindManagerResource(ctx, t)
	if err != nil {
		return Result{}, err
	}
	target := Target{
		Name:     attrName,
		Primary:  managerURI + op.subpath,
		Fallback: managerURI + op.fallback,
	}

	uri, current, err := ReadAttributes(ctx, t, target)
	if err != nil {
		return Result{}, err
	}
	diff, err := DiffAttributes(current, map[string]any{attrName: attrValue})
	if err != nil {
		return Result{}, err
	}
	if len(diff) == 0 {
		return Result{Changed: false, Msg: fmt.Sprintf("%s already set", attrName)}, nil
	}
	return ApplyAttributes(ctx, t, uri, diff, op.advisory)
}
