package manage

import (
	"context"

	"github.com/danmuck/iloctl/internal/redfish"
)

const (
	biosAlreadySetMsg = "Service BIOS attributes already set"
	biosAppliedMsg    = "Service BIOS settings applied. System Reset required."
)

// ApplyServiceBIOSAttributes reconciles the system's service BIOS
// attributes: validates every requested name against the live set, then
// writes only the ones that differ. No write happens when the controller
// already matches.
func ApplyServiceBIOSAttributes(ctx context.Context, t redfish.Transport, desired map[string]any) (Result, error) {
	target, err := FindBIOSServiceTarget(ctx, t)
	if err != nil {
		return Result{}, err
	}
	uri, current, err := ReadAttributes(ctx, t, target)
	if err != nil {
		return Result{}, err
	}
	diff, err := DiffAttributes(current, desired)
	if err != nil {
		return Result{}, err
	}
	if len(diff) == 0 {
		return Result{Changed: false, Msg: biosAlreadySetMsg}, nil
	}
	return ApplyAttributes(ctx, t, uri, diff, biosAppliedMsg)
}
