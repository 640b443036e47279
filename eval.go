package ple

import (
	"fmt"
)

// Eval recursively evaluates the operator against data and returns a
// single boolean. data is passed down unchanged; only Regex operators
// inspect it, and they require text (string or []byte).
//
// cache may be nil, in which case every Regex operator compiles a
// transient matcher honoring its own CaseSensitive flag on every call.
// With a cache, compiled patterns are reused across operators and
// evaluations; see PatternCache for the sharing rules.
//
// Parameter counts are checked here, not at construction: a kind
// evaluated with a count it does not permit fails with an *ArityError
// and the whole call fails. There are no partial results.
func Eval(op *Operator, data any, cache *PatternCache) (bool, error) {
	if op == nil {
		return false, fmt.Errorf("eval of nil operator")
	}

	switch op.Kind {
	case AlwaysTrue:
		return true, nil

	case AlwaysFalse:
		return false, nil

	case Regex:
		return evalRegex(op, data, cache)

	case And:
		// Vacuously true with no parameters.
		for _, p := range op.params {
			v, err := Eval(p, data, cache)
			if err != nil {
				return false, err
			}
			if !v {
				return false, nil
			}
		}
		return true, nil

	case Or:
		// Vacuously false with no parameters.
		for _, p := range op.params {
			v, err := Eval(p, data, cache)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}
		return false, nil

	case Not:
		if len(op.params) > 1 {
			return false, &ArityError{Kind: op.Kind, Count: len(op.params), Want: "at most 1"}
		}
		if len(op.params) == 0 {
			return true, nil
		}
		v, err := Eval(op.params[0], data, cache)
		if err != nil {
			return false, err
		}
		return !v, nil

	case Xor:
		if len(op.params) != 2 {
			return false, &ArityError{Kind: op.Kind, Count: len(op.params), Want: "exactly 2"}
		}
		// Both parameters are always evaluated.
		a, err := Eval(op.params[0], data, cache)
		if err != nil {
			return false, err
		}
		b, err := Eval(op.params[1], data, cache)
		if err != nil {
			return false, err
		}
		return a != b, nil

	case Nand:
		if len(op.params) != 2 {
			return false, &ArityError{Kind: op.Kind, Count: len(op.params), Want: "exactly 2"}
		}
		a, err := Eval(op.params[0], data, cache)
		if err != nil {
			return false, err
		}
		if !a {
			return true, nil
		}
		b, err := Eval(op.params[1], data, cache)
		if err != nil {
			return false, err
		}
		return !b, nil

	case Nor:
		if len(op.params) < 2 {
			return false, &ArityError{Kind: op.Kind, Count: len(op.params), Want: "at least 2"}
		}
		for _, p := range op.params {
			v, err := Eval(p, data, cache)
			if err != nil {
				return false, err
			}
			if v {
				return false, nil
			}
		}
		return true, nil

	default:
		return false, fmt.Errorf("unknown operator kind %q", op.Kind)
	}
}

func evalRegex(op *Operator, data any, cache *PatternCache) (bool, error) {
	text, err := dataText(op, data)
	if err != nil {
		return false, err
	}

	if cache == nil {
		re, err := compilePattern(op.Pattern, op.CaseSensitive)
		if err != nil {
			return false, err
		}
		return re.MatchString(text), nil
	}

	re, err := cache.Matcher(op.Pattern, op.CaseSensitive)
	if err != nil {
		return false, err
	}
	return re.MatchString(text), nil
}

// dataText extracts the text a Regex operator searches.
func dataText(op *Operator, data any) (string, error) {
	switch d := data.(type) {
	case string:
		return d, nil
	case []byte:
		return string(d), nil
	default:
		return "", fmt.Errorf("regex operator %q requires text data, got %T", op.Pattern, data)
	}
}
