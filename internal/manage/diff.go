package manage

import (
	"encoding/json"
	"reflect"
)

// DiffAttributes computes the subset of desired that actually needs to be
// written. Unknown names are collected across the whole request before
// failing, so the error lists every offender. An empty diff means the
// controller already matches.
func DiffAttributes(current, desired map[string]any) (map[string]any, error) {
	diff := make(map[string]any, len(desired))
	bad := map[string]any{}

	for name, want := range desired {
		have, ok := current[name]
		if !ok {
			bad[name] = want
			continue
		}
		if attributeEqual(have, want) {
			continue
		}
		diff[name] = want
	}

	if len(bad) > 0 {
		return nil, &InvalidAttributeError{Offenders: bad}
	}
	return diff, nil
}

// attributeEqual compares a controller-reported value against a desired
// one. Controller state decodes numbers as float64 while desired values
// may carry int64 (TOML) or json.Number, so numeric values compare by
// magnitude, not Go type.
func attributeEqual(have, want any) bool {
	if h, ok := toFloat(have); ok {
		w, wok := toFloat(want)
		return wok && h == w
	}
	return reflect.DeepEqual(have, want)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
