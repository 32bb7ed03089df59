package runtime

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mbarros/inquira/pkg/domain"
)

var (
	truthyWords = []string{"true", "1", "sim", "yes", "verdadeiro"}
	falsyWords  = []string{"false", "0", "nao", "não", "no", "falso"}
)

// normalizeBoolean collapses a boolean question's stored answer to true,
// false or nil. Strings match the usual yes/no synonyms in English and
// Portuguese plus the question's own labels; wrapper objects are unwrapped
// through their value or label. Anything unrecognized falls back to loose
// truthiness.
func normalizeBoolean(value any, trueLabel, falseLabel string) any {
	switch t := value.(type) {
	case nil:
		return nil
	case bool:
		return t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		lower := strings.ToLower(s)
		for _, w := range truthyWords {
			if lower == w {
				return true
			}
		}
		for _, w := range falsyWords {
			if lower == w {
				return false
			}
		}
		if l := strings.ToLower(strings.TrimSpace(trueLabel)); l != "" && lower == l {
			return true
		}
		if l := strings.ToLower(strings.TrimSpace(falseLabel)); l != "" && lower == l {
			return false
		}
		return true
	case map[string]any:
		if v, ok := t["value"]; ok {
			return normalizeBoolean(v, trueLabel, falseLabel)
		}
		if l, ok := t["label"]; ok {
			return normalizeBoolean(l, trueLabel, falseLabel)
		}
		return true
	case domain.Option:
		if t.Value != nil {
			return normalizeBoolean(t.Value, trueLabel, falseLabel)
		}
		return normalizeBoolean(t.Label, trueLabel, falseLabel)
	}

	n := domain.ToNumber(value)
	if n == 1 {
		return true
	}
	if n == 0 {
		return false
	}
	return domain.Truthy(value)
}

// normalizeOptionAnswer maps a choice answer to its comparable form: a
// string for scalar answers, a string slice for array answers (elements
// without a comparable value are dropped), nil when nothing comparable
// exists. Stringification matches score map keys, so 5, 5.0 and "5" all
// normalize identically.
func normalizeOptionAnswer(value any) any {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if c, ok := comparableOptionValue(rv.Index(i).Interface()); ok {
				out = append(out, stringifyScalar(c))
			}
		}
		return out
	}
	if c, ok := comparableOptionValue(value); ok {
		return stringifyScalar(c)
	}
	return nil
}

// comparableOptionValue extracts the value an option answer compares by.
// Scalars compare by themselves; wrapper maps by their value, id or key
// field, in that order, when it holds a scalar.
func comparableOptionValue(value any) (any, bool) {
	switch t := value.(type) {
	case nil:
		return nil, false
	case map[string]any:
		for _, key := range []string{"value", "id", "key"} {
			if v, ok := t[key]; ok && isScalar(v) {
				return v, true
			}
		}
		return nil, false
	case domain.Option:
		if isScalar(t.Value) {
			return t.Value, true
		}
		return nil, false
	}
	if isScalar(value) {
		return value, true
	}
	return nil, false
}

func isScalar(value any) bool {
	switch value.(type) {
	case string, bool:
		return true
	case nil:
		return false
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// stringifyScalar renders a scalar the way score map keys are rendered:
// numbers without a trailing ".0", booleans as "true"/"false".
func stringifyScalar(value any) string {
	switch t := value.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	}
	n := domain.ToNumber(value)
	if math.IsNaN(n) {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// emptyAnswer reports nil, empty string and empty slice answers.
func emptyAnswer(value any) bool {
	switch t := value.(type) {
	case nil:
		return true
	case string:
		return t == ""
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len() == 0
	}
	return false
}
