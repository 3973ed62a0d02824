package options

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	bberrors "github.com/backbee/bbinstall/pkg/errors"
)

// maxSuggestionDistance bounds the edit distance for "did you mean" hints.
const maxSuggestionDistance = 3

// Options is an effective option set.
type Options map[string]any

// Resolve returns every key of defaults, with the value of overrides
// wherever overrides has that key.
func Resolve(defaults, overrides map[string]any) Options {
	effective := make(Options, len(defaults))
	for k, v := range defaults {
		if ov, ok := overrides[k]; ok {
			effective[k] = ov
			continue
		}
		effective[k] = v
	}
	return effective
}

// Overlay merges maps left to right; later maps win on key collision.
func Overlay(layers ...map[string]any) map[string]any {
	out := map[string]any{}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

// String returns the value of key as a string. Missing and nil values are empty.
func (o Options) String(key string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bool returns the value of key as a bool. Values that are neither bools nor
// strings accepted by strconv.ParseBool are false; Validate reports them.
func (o Options) Bool(key string) bool {
	b, err := parseBool(o[key])
	if err != nil {
		return false
	}
	return b
}

// Validate checks that every key in boolKeys holds a bool or a boolean string.
func (o Options) Validate(boolKeys ...string) error {
	for _, k := range boolKeys {
		if _, err := parseBool(o[k]); err != nil {
			return bberrors.WrapWithContext(bberrors.ErrCodeInvalidOption,
				"option must be a boolean", err, map[string]any{"option": k})
		}
	}
	return nil
}

func parseBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(t))
	case nil:
		return false, fmt.Errorf("value is not set")
	default:
		return false, fmt.Errorf("unsupported value %v (%T)", v, v)
	}
}

// Keys returns the option names in sorted order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnknownKey is an override key that is not an option name.
type UnknownKey struct {
	Key string
	// Suggestion is the closest option name, empty when none is close.
	Suggestion string
}

// Unknown lists override keys missing from defaults, sorted by key.
func Unknown(defaults, overrides map[string]any) []UnknownKey {
	var unknown []UnknownKey
	for k := range overrides {
		if _, ok := defaults[k]; ok {
			continue
		}
		unknown = append(unknown, UnknownKey{Key: k, Suggestion: suggest(k, defaults)})
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i].Key < unknown[j].Key })
	return unknown
}

func suggest(key string, defaults map[string]any) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for candidate := range defaults {
		d := levenshtein.ComputeDistance(strings.ToLower(key), candidate)
		if d < bestDistance || (d == bestDistance && candidate < best) {
			best, bestDistance = candidate, d
		}
	}
	if bestDistance > maxSuggestionDistance {
		return ""
	}
	return best
}

// ParseOverrides parses key=value pairs, as given to --set. Values stay
// strings; typed accessors interpret them.
func ParseOverrides(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, bberrors.WrapWithContext(bberrors.ErrCodeInvalidOption,
				"override must have the form key=value", nil, map[string]any{"value": p})
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
