package domain

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// The comparison primitives below reproduce loose, JavaScript-style
// semantics on purpose: graphs authored against the visual designer rely on
// "5" == 5 being true and on nil operands degrading to false instead of
// failing. Every function here is total; unknown shapes compare as false.

// ToNumber coerces a value for the ordering operators. nil, empty strings
// and anything non-numeric yield NaN, which makes every ordering comparison
// involving them false.
func ToNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return math.NaN()
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return math.NaN()
}

// Truthy reports boolean coercion: nil, false, 0, NaN and "" are false;
// everything else (including empty slices and maps) is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		n := ToNumber(v)
		return n != 0 && !math.IsNaN(n)
	}
	return true
}

// LooseEqual compares two values with loose equality: nil equals only nil,
// numbers and numeric strings compare numerically, booleans coerce to 0/1,
// strings compare exactly, and composite values fall back to deep equality.
func LooseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	an, aNum := numericValue(a)
	bn, bNum := numericValue(b)
	as, aStr := a.(string)
	bs, bStr := b.(string)

	switch {
	case aNum && bNum:
		return an == bn // NaN never equals
	case aNum && bStr:
		return an == ToNumber(bs) && !math.IsNaN(an)
	case bNum && aStr:
		return bn == ToNumber(as) && !math.IsNaN(bn)
	case aStr && bStr:
		return as == bs
	case aNum || bNum || aStr || bStr:
		// Scalar against composite: never equal.
		return false
	default:
		return reflect.DeepEqual(a, b)
	}
}

// numericValue reports whether v is a number or boolean and returns its
// numeric form (booleans coerce to 0/1, as loose equality demands).
func numericValue(v any) (float64, bool) {
	switch v.(type) {
	case bool, json.Number:
		return ToNumber(v), true
	case string, nil:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return ToNumber(v), true
	}
	return 0, false
}

// sliceContains reports whether collection is a slice or array holding an
// element loosely equal to item.
func sliceContains(collection, item any) bool {
	if collection == nil {
		return false
	}
	rv := reflect.ValueOf(collection)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if LooseEqual(rv.Index(i).Interface(), item) {
			return true
		}
	}
	return false
}

// Compare applies an operator to two resolved terms. It is the single
// operator table shared by the traversal evaluator and the rule trigger
// evaluator. Unknown operators (including "between", which only exists on
// score triggers) evaluate to false.
func Compare(op Operator, left, right any) bool {
	switch op {
	case OpEqual:
		return LooseEqual(left, right)
	case OpNotEqual:
		return !LooseEqual(left, right)
	case OpGreater, OpGreaterEqual, OpLess, OpLessEqual:
		l, r := ToNumber(left), ToNumber(right)
		if math.IsNaN(l) || math.IsNaN(r) {
			return false
		}
		switch op {
		case OpGreater:
			return l > r
		case OpGreaterEqual:
			return l >= r
		case OpLess:
			return l < r
		default:
			return l <= r
		}
	case OpIn:
		return sliceContains(right, left)
	case OpContains:
		return sliceContains(left, right)
	case OpAnd:
		return Truthy(left) && Truthy(right)
	case OpOr:
		return Truthy(left) || Truthy(right)
	default:
		return false
	}
}
