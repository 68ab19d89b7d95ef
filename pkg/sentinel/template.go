package sentinel

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// refPattern matches one `{{...}}` reference, capturing its trimmed inner
// path (spec §4.4: "Whitespace inside the braces is trimmed").
var refPattern = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// Interpolate expands every `{{path}}` reference in s against ctx (spec
// §4.4). When s is exactly one reference, the raw resolved value is returned
// (so JSON objects/arrays/numbers survive); otherwise substitution is
// textual and the return value is always a string.
func Interpolate(s string, ctx *ExecContext) any {
	matches := refPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(s) {
		path := s[matches[0][2]:matches[0][3]]
		val, resolved := resolvePath(path, ctx)
		if !resolved {
			return s // unknown root token: literal passthrough
		}
		return val
	}

	return refPattern.ReplaceAllStringFunc(s, func(full string) string {
		inner := refPattern.FindStringSubmatch(full)[1]
		val, resolved := resolvePath(inner, ctx)
		if !resolved {
			return full
		}
		return stringify(val)
	})
}

// InterpolateString is a convenience wrapper that always returns the string
// form, for callers (Shell args, Condition) that never want a raw value.
func InterpolateString(s string, ctx *ExecContext) string {
	return stringify(Interpolate(s, ctx))
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

// resolvePath implements spec §4.4's path grammar. The bool return is false
// only for an unrecognized root token (steps/input/inputs/named/env are the
// only roots grammar recognizes); a recognized root with an invalid index
// or unknown field resolves to "" per spec ("Out-of-range N yields empty
// string").
func resolvePath(path string, ctx *ExecContext) (any, bool) {
	parts := strings.Split(path, ".")
	if len(parts) == 0 {
		return nil, false
	}
	root := parts[0]
	rest := parts[1:]

	switch root {
	case "steps":
		return resolveStepRef(rest, func(n int) (StepResult, bool) {
			results := ctx.Results()
			if n < 0 || n >= len(results) {
				return StepResult{}, false
			}
			return results[n], true
		}), true

	case "input", "inputs":
		if len(rest) == 0 {
			return "", true
		}
		v, ok := ctx.Input(strings.Join(rest, "."))
		if !ok {
			return "", true
		}
		return v, true

	case "named":
		if len(rest) == 0 {
			return "", true
		}
		label := rest[0]
		r, ok := ctx.Named(label)
		if !ok {
			return "", true
		}
		return resolveStepField(r, rest[1:]), true

	case "env":
		if len(rest) == 0 {
			return "", true
		}
		return os.Getenv(strings.Join(rest, ".")), true

	default:
		return nil, false
	}
}

// resolveStepRef handles "steps.N[.field]".
func resolveStepRef(rest []string, lookup func(int) (StepResult, bool)) any {
	if len(rest) == 0 {
		return ""
	}
	n, err := strconv.Atoi(rest[0])
	if err != nil {
		return ""
	}
	r, ok := lookup(n)
	if !ok {
		return ""
	}
	return resolveStepField(r, rest[1:])
}

// resolveStepField resolves the field path after "steps.N" or "named.label",
// per spec §4.4's shared field set: output, success, error, exitCode,
// data[.k1.k2...], type/stepType, index/stepIndex, durationMs. Bare
// "steps.N" (empty field path) equals "steps.N.output".
func resolveStepField(r StepResult, field []string) any {
	if len(field) == 0 {
		return r.Output
	}
	switch field[0] {
	case "output":
		return r.Output
	case "success":
		return r.Success
	case "error":
		return r.Error
	case "exitCode", "exit_code":
		if r.ExitCode == nil {
			return nil
		}
		return *r.ExitCode
	case "type", "stepType":
		return string(r.StepType)
	case "index", "stepIndex":
		return r.StepIndex
	case "durationMs", "duration_ms":
		return r.DurationMs
	case "data":
		var cur any = r.Data
		for _, key := range field[1:] {
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[key]
		}
		return cur
	default:
		return nil
	}
}

// EvaluateCondition implements spec §4.3's purely lexical condition
// evaluation: the interpolated string is truthy unless it trims to one of
// {"", "0", "null", "undefined", "false"}.
func EvaluateCondition(condition string, ctx *ExecContext) bool {
	val := strings.TrimSpace(InterpolateString(condition, ctx))
	switch val {
	case "", "0", "null", "undefined", "false":
		return false
	default:
		return true
	}
}
