package runtime

import (
	"encoding/json"
	"strconv"

	"github.com/continuum-run/continuum/pkg/core"
	"github.com/google/uuid"
)

// Params wraps a command envelope's dynamic params object (spec §3's
// "params: object") with typed accessors, alias fallback, and defaults
// (spec §4.1's "Parameter extraction"). Grounded in the teacher's config
// provider lookup style (`pkg/config` key lookup with snake/camel alias
// resolution), adapted from config keys to per-request params.
type Params map[string]any

// lookup returns the raw value for key, falling back to any of aliases (in
// order) if key is absent, and reports whether anything was found.
func (p Params) lookup(key string, aliases ...string) (any, bool) {
	if v, ok := p[key]; ok {
		return v, true
	}
	for _, a := range aliases {
		if v, ok := p[a]; ok {
			return v, true
		}
	}
	return nil, false
}

func missing(op, key string) error {
	return core.NewKindError(op, core.KindMissingParam, "missing required param \""+key+"\"", nil)
}

func bad(op, key string, want string) error {
	return core.NewKindError(op, core.KindBadParam, "param \""+key+"\" is not a valid "+want, nil)
}

// String returns a required string param, trying aliases if key is absent.
func (p Params) String(key string, aliases ...string) (string, error) {
	v, ok := p.lookup(key, aliases...)
	if !ok {
		return "", missing("Params.String", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", bad("Params.String", key, "string")
	}
	return s, nil
}

// StringOr returns an optional string param, or def if absent/wrong type.
func (p Params) StringOr(def string, key string, aliases ...string) string {
	s, err := p.String(key, aliases...)
	if err != nil {
		return def
	}
	return s
}

// UUID returns a required param parsed as a UUID.
func (p Params) UUID(key string, aliases ...string) (uuid.UUID, error) {
	s, err := p.String(key, aliases...)
	if err != nil {
		return uuid.UUID{}, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, bad("Params.UUID", key, "uuid")
	}
	return id, nil
}

// Int returns a required integer param. JSON numbers decode as float64; this
// accepts both float64 and int/int64 inputs (the latter for params built
// in-process rather than decoded from JSON).
func (p Params) Int(key string, aliases ...string) (int64, error) {
	v, ok := p.lookup(key, aliases...)
	if !ok {
		return 0, missing("Params.Int", key)
	}
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, bad("Params.Int", key, "integer")
		}
		return i, nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, bad("Params.Int", key, "integer")
		}
		return i, nil
	default:
		return 0, bad("Params.Int", key, "integer")
	}
}

// IntOr returns an optional integer param, or def if absent/wrong type.
func (p Params) IntOr(def int64, key string, aliases ...string) int64 {
	v, err := p.Int(key, aliases...)
	if err != nil {
		return def
	}
	return v
}

// Float returns a required float param.
func (p Params) Float(key string, aliases ...string) (float64, error) {
	v, ok := p.lookup(key, aliases...)
	if !ok {
		return 0, missing("Params.Float", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, bad("Params.Float", key, "float")
		}
		return f, nil
	default:
		return 0, bad("Params.Float", key, "float")
	}
}

// FloatOr returns an optional float param, or def if absent/wrong type.
func (p Params) FloatOr(def float64, key string, aliases ...string) float64 {
	v, err := p.Float(key, aliases...)
	if err != nil {
		return def
	}
	return v
}

// Bool returns a required bool param.
func (p Params) Bool(key string, aliases ...string) (bool, error) {
	v, ok := p.lookup(key, aliases...)
	if !ok {
		return false, missing("Params.Bool", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, bad("Params.Bool", key, "bool")
	}
	return b, nil
}

// BoolOr returns an optional bool param, or def if absent/wrong type.
func (p Params) BoolOr(def bool, key string, aliases ...string) bool {
	b, err := p.Bool(key, aliases...)
	if err != nil {
		return def
	}
	return b
}

// Array returns a required array param as []any.
func (p Params) Array(key string, aliases ...string) ([]any, error) {
	v, ok := p.lookup(key, aliases...)
	if !ok {
		return nil, missing("Params.Array", key)
	}
	a, ok := v.([]any)
	if !ok {
		return nil, bad("Params.Array", key, "array")
	}
	return a, nil
}

// Object returns a required object param as map[string]any.
func (p Params) Object(key string, aliases ...string) (map[string]any, error) {
	v, ok := p.lookup(key, aliases...)
	if !ok {
		return nil, missing("Params.Object", key)
	}
	o, ok := v.(map[string]any)
	if !ok {
		return nil, bad("Params.Object", key, "object")
	}
	return o, nil
}

// As required-decodes the param at key (or an alias) into dst, a pointer to a
// declared record shape, by round-tripping through JSON. This is the "typed
// deserialization into declared record shapes" accessor from spec §4.1.
func (p Params) As(dst any, key string, aliases ...string) error {
	v, ok := p.lookup(key, aliases...)
	if !ok {
		return missing("Params.As", key)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return bad("Params.As", key, "json-serializable value")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return bad("Params.As", key, "value matching the target shape")
	}
	return nil
}

// CamelAlias derives the camelCase form of a snake_case key (and vice versa
// is handled by passing both explicitly) so callers can write
// p.String("max_tokens", runtime.CamelAlias("max_tokens")) for the
// "snake_case↔camelCase alias fallback" spec §4.1 requires.
func CamelAlias(snakeKey string) string {
	out := make([]byte, 0, len(snakeKey))
	upperNext := false
	for i := 0; i < len(snakeKey); i++ {
		c := snakeKey[i]
		if c == '_' {
			upperNext = true
			continue
		}
		if upperNext && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
			upperNext = false
		}
		out = append(out, c)
	}
	return string(out)
}
