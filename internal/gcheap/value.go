// Package gcheap implements the runtime value model and a mark-and-sweep
// garbage collector over the subset of values that require heap
// allocation: strings, objects, arrays, environments and user functions.
//
// Numbers, booleans, null and undefined are small, immutable and carried
// by value (no heap node, no GC pressure) the same way a Go float64 or
// bool would be. Only values that are mutable, shared by reference, or
// form reference cycles (objects, arrays, closures holding an
// environment chain) go through the heap and get swept.
package gcheap

import "fmt"

// Value is the tagged-union interface implemented by every runtime
// value produced by the evaluator.
type Value interface {
	Type() string
	String() string
}

// Number is a JS number; every number, integer or float, is float64.
type Number float64

func (Number) Type() string { return "number" }
func (n Number) String() string {
	return formatNumber(float64(n))
}

func formatNumber(f float64) string {
	if f != f {
		return "NaN"
	}
	if f > 1e21 || f < -1e21 {
		return fmt.Sprintf("%g", f)
	}
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// Boolean is a JS boolean.
type Boolean bool

func (Boolean) Type() string       { return "boolean" }
func (b Boolean) String() string   { return fmt.Sprintf("%t", bool(b)) }

// Null is the single `null` value.
type Null struct{}

func (Null) Type() string   { return "object" }
func (Null) String() string { return "null" }

// Undefined is the single `undefined` value.
type Undefined struct{}

func (Undefined) Type() string   { return "undefined" }
func (Undefined) String() string { return "undefined" }

// NativeFunction wraps a Go function exposed to scripts (console.log,
// Math.*, JSON.*). It carries no heap references of its own, so it is
// not GC-tracked.
type NativeFunction struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (*NativeFunction) Type() string { return "function" }

// String renders the source quirk called out for native functions: the
// opening "function " plus the name, then the closing bracket without a
// matching "[" (distinct from JSFunction's well-formed "[Function: name]").
func (n *NativeFunction) String() string { return "function " + n.Name + "]" }

var (
	True  = Boolean(true)
	False = Boolean(false)
)

// Bool returns the canonical Boolean value for b.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Truthy implements JS truthiness coercion for conditionals.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Boolean:
		return bool(x)
	case Number:
		return float64(x) != 0 && float64(x) == float64(x) // excludes NaN
	case Null, Undefined:
		return false
	case *JSString:
		return len(x.Value) > 0
	default:
		return true
	}
}
