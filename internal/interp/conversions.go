package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/jsi/internal/gcheap"
)

// ToStringValue implements the abstract ToString coercion used by
// template interpolation, string concatenation and property keys.
// console.log uses internal/natives' own toDisplayString instead.
func ToStringValue(v gcheap.Value) string {
	switch x := v.(type) {
	case *gcheap.JSString:
		return x.Value
	case gcheap.Number:
		return x.String()
	case gcheap.Boolean:
		return x.String()
	case gcheap.Null:
		return "null"
	case gcheap.Undefined:
		return "undefined"
	case nil:
		return "undefined"
	default:
		return v.String()
	}
}

// ToNumber implements the abstract ToNumber coercion used by arithmetic
// and relational operators.
func ToNumber(v gcheap.Value) float64 {
	switch x := v.(type) {
	case gcheap.Number:
		return float64(x)
	case gcheap.Boolean:
		if x {
			return 1
		}
		return 0
	case gcheap.Null:
		return 0
	case gcheap.Undefined:
		return math.NaN()
	case *gcheap.JSString:
		s := strings.TrimSpace(x.Value)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case nil:
		return math.NaN()
	default:
		return math.NaN()
	}
}

func toInt32(v gcheap.Value) int32 {
	f := ToNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(uint32(int64(f)))
}

func toUint32(v gcheap.Value) uint32 {
	f := ToNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return uint32(int64(f))
}

// typeofString implements the `typeof` operator.
func typeofString(v gcheap.Value) string {
	switch v.(type) {
	case gcheap.Undefined, nil:
		return "undefined"
	case gcheap.Null:
		return "object"
	case gcheap.Number:
		return "number"
	case gcheap.Boolean:
		return "boolean"
	case *gcheap.JSString:
		return "string"
	case *gcheap.JSFunction, *gcheap.NativeFunction:
		return "function"
	default:
		return "object"
	}
}

// strictEquals implements `===`: same type and same value, with
// reference identity for objects/arrays/functions.
func strictEquals(a, b gcheap.Value) bool {
	switch x := a.(type) {
	case gcheap.Number:
		y, ok := b.(gcheap.Number)
		return ok && float64(x) == float64(y)
	case gcheap.Boolean:
		y, ok := b.(gcheap.Boolean)
		return ok && x == y
	case *gcheap.JSString:
		y, ok := b.(*gcheap.JSString)
		return ok && x.Value == y.Value
	case gcheap.Null:
		_, ok := b.(gcheap.Null)
		return ok
	case gcheap.Undefined:
		_, ok := b.(gcheap.Undefined)
		return ok
	default:
		return a == b
	}
}

// looseEquals implements `==`, covering the standard JS coercions
// (null == undefined, number/string cross-comparison).
func looseEquals(a, b gcheap.Value) bool {
	if strictEquals(a, b) {
		return true
	}
	_, aNull := a.(gcheap.Null)
	_, aUndef := a.(gcheap.Undefined)
	_, bNull := b.(gcheap.Null)
	_, bUndef := b.(gcheap.Undefined)
	if (aNull || aUndef) && (bNull || bUndef) {
		return true
	}
	if aNull || aUndef || bNull || bUndef {
		return false
	}

	_, aStr := a.(*gcheap.JSString)
	_, bStr := b.(*gcheap.JSString)
	_, aNum := a.(gcheap.Number)
	_, bNum := b.(gcheap.Number)
	_, aBool := a.(gcheap.Boolean)
	_, bBool := b.(gcheap.Boolean)

	if aBool {
		return looseEquals(gcheap.Number(ToNumber(a)), b)
	}
	if bBool {
		return looseEquals(a, gcheap.Number(ToNumber(b)))
	}
	if (aNum && bStr) || (aStr && bNum) {
		return ToNumber(a) == ToNumber(b)
	}
	return false
}
