package interp

import (
	"math"

	"github.com/cwbudde/jsi/internal/ast"
	"github.com/cwbudde/jsi/internal/gcheap"
	"github.com/cwbudde/jsi/internal/token"
)

func (i *Interpreter) evalUnary(e *ast.UnaryExpression, env *gcheap.JSEnv) (gcheap.Value, error) {
	switch e.Operator {
	case "typeof":
		// typeof on an undeclared identifier must not throw.
		if id, ok := e.Operand.(*ast.Identifier); ok {
			if _, found := env.Resolve(id.Name); !found && id.Name != "undefined" {
				return i.Heap.NewString("undefined"), nil
			}
		}
		v, err := i.evalExpression(e.Operand, env)
		if err != nil {
			return nil, err
		}
		return i.Heap.NewString(typeofString(v)), nil

	case "delete":
		return i.evalDelete(e.Operand, env)

	case "++", "--":
		return i.evalUpdate(e, env)
	}

	v, err := i.evalExpression(e.Operand, env)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "!":
		return gcheap.Bool(!gcheap.Truthy(v)), nil
	case "-":
		n, ok := v.(gcheap.Number)
		if !ok {
			return gcheap.Undefined{}, nil
		}
		return gcheap.Number(-float64(n)), nil
	case "+":
		n, ok := v.(gcheap.Number)
		if !ok {
			return gcheap.Undefined{}, nil
		}
		return n, nil
	case "~":
		return gcheap.Number(float64(^toInt32(v))), nil
	case "void":
		return gcheap.Undefined{}, nil
	}
	return nil, newTypeError(e.Pos(), "unsupported unary operator %q", e.Operator)
}

func (i *Interpreter) evalDelete(target ast.Expression, env *gcheap.JSEnv) (gcheap.Value, error) {
	switch t := target.(type) {
	case *ast.MemberExpression:
		obj, err := i.evalExpression(t.Object, env)
		if err != nil {
			return nil, err
		}
		if o, ok := obj.(*gcheap.JSObject); ok {
			return gcheap.Bool(o.Delete(t.Property)), nil
		}
		return gcheap.Bool(false), nil
	case *ast.IndexExpression:
		obj, err := i.evalExpression(t.Object, env)
		if err != nil {
			return nil, err
		}
		idx, err := i.evalExpression(t.Index, env)
		if err != nil {
			return nil, err
		}
		if o, ok := obj.(*gcheap.JSObject); ok {
			return gcheap.Bool(o.Delete(ToStringValue(idx))), nil
		}
		return gcheap.Bool(false), nil
	default:
		return gcheap.Bool(true), nil
	}
}

func (i *Interpreter) evalUpdate(e *ast.UnaryExpression, env *gcheap.JSEnv) (gcheap.Value, error) {
	id, ok := e.Operand.(*ast.Identifier)
	if !ok {
		return nil, newTypeError(e.Pos(), "invalid update target")
	}
	b, found := env.Resolve(id.Name)
	if !found {
		return nil, newUndefinedVariableError(e.Pos(), "%s is not defined", id.Name)
	}
	if b.Const {
		return nil, newTypeError(e.Pos(), "assignment to constant variable %q", id.Name)
	}
	old := ToNumber(b.Value)
	var next float64
	if e.Operator == "++" {
		next = old + 1
	} else {
		next = old - 1
	}
	b.Value = gcheap.Number(next)
	if e.Prefix {
		return b.Value, nil
	}
	return gcheap.Number(old), nil
}

func (i *Interpreter) evalBinaryExpr(e *ast.BinaryExpression, env *gcheap.JSEnv) (gcheap.Value, error) {
	// && and || (and ??) short-circuit, so the right operand must not be
	// evaluated eagerly.
	switch e.Operator {
	case "&&":
		left, err := i.evalExpression(e.Left, env)
		if err != nil {
			return nil, err
		}
		if !gcheap.Truthy(left) {
			return left, nil
		}
		return i.evalExpression(e.Right, env)
	case "||":
		left, err := i.evalExpression(e.Left, env)
		if err != nil {
			return nil, err
		}
		if gcheap.Truthy(left) {
			return left, nil
		}
		return i.evalExpression(e.Right, env)
	case "??":
		left, err := i.evalExpression(e.Left, env)
		if err != nil {
			return nil, err
		}
		if !isNullish(left) {
			return left, nil
		}
		return i.evalExpression(e.Right, env)
	}

	left, err := i.evalExpression(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpression(e.Right, env)
	if err != nil {
		return nil, err
	}
	return i.applyBinaryOp(e.Operator, left, right, e.Pos())
}

func (i *Interpreter) applyBinaryOp(op string, left, right gcheap.Value, pos token.Position) (gcheap.Value, error) {
	switch op {
	case "+":
		_, lStr := left.(*gcheap.JSString)
		_, rStr := right.(*gcheap.JSString)
		if lStr || rStr {
			return i.Heap.NewString(ToStringValue(left) + ToStringValue(right)), nil
		}
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return gcheap.Undefined{}, nil
		}
		return gcheap.Number(l + r), nil
	case "-":
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return gcheap.Undefined{}, nil
		}
		return gcheap.Number(l - r), nil
	case "*":
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return gcheap.Undefined{}, nil
		}
		return gcheap.Number(l * r), nil
	case "/":
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return gcheap.Undefined{}, nil
		}
		return gcheap.Number(l / r), nil
	case "%":
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return gcheap.Undefined{}, nil
		}
		return gcheap.Number(math.Mod(l, r)), nil
	case "**":
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return gcheap.Undefined{}, nil
		}
		return gcheap.Number(math.Pow(l, r)), nil
	case "==":
		return gcheap.Bool(looseEquals(left, right)), nil
	case "!=":
		return gcheap.Bool(!looseEquals(left, right)), nil
	case "===":
		return gcheap.Bool(strictEquals(left, right)), nil
	case "!==":
		return gcheap.Bool(!strictEquals(left, right)), nil
	case "<":
		return compareValues(left, right, func(c int) bool { return c < 0 }), nil
	case ">":
		return compareValues(left, right, func(c int) bool { return c > 0 }), nil
	case "<=":
		return compareValues(left, right, func(c int) bool { return c <= 0 }), nil
	case ">=":
		return compareValues(left, right, func(c int) bool { return c >= 0 }), nil
	case "&":
		return gcheap.Number(float64(toInt32(left) & toInt32(right))), nil
	case "|":
		return gcheap.Number(float64(toInt32(left) | toInt32(right))), nil
	case "^":
		return gcheap.Number(float64(toInt32(left) ^ toInt32(right))), nil
	case "<<":
		return gcheap.Number(float64(toInt32(left) << (toUint32(right) & 31))), nil
	case ">>":
		return gcheap.Number(float64(toInt32(left) >> (toUint32(right) & 31))), nil
	case ">>>":
		return gcheap.Number(float64(toUint32(left) >> (toUint32(right) & 31))), nil
	case "instanceof":
		return gcheap.Bool(evalInstanceof(left, right)), nil
	case "in":
		return evalIn(left, right, pos)
	}
	return nil, newTypeError(pos, "unsupported binary operator %q", op)
}

// bothNumbers reports whether left and right are both Number, returning
// their unwrapped float64 values. Arithmetic operators other than string
// concatenation only apply to Number operands; any other combination is
// left to the caller to resolve as Undefined.
func bothNumbers(left, right gcheap.Value) (float64, float64, bool) {
	l, lok := left.(gcheap.Number)
	r, rok := right.(gcheap.Number)
	if !lok || !rok {
		return 0, 0, false
	}
	return float64(l), float64(r), true
}

func evalInstanceof(left, right gcheap.Value) bool {
	_, isFn := right.(*gcheap.JSFunction)
	_, isNative := right.(*gcheap.NativeFunction)
	if !isFn && !isNative {
		return false
	}
	switch left.(type) {
	case *gcheap.JSObject, *gcheap.JSArray, *gcheap.JSFunction:
		return true
	default:
		return false
	}
}

func evalIn(left, right gcheap.Value, p token.Position) (gcheap.Value, error) {
	switch left.(type) {
	case *gcheap.JSString, gcheap.Number:
	default:
		return nil, newNotAStringError(p, "cannot use %s as a property key with 'in'", typeofString(left))
	}
	key := ToStringValue(left)
	switch r := right.(type) {
	case *gcheap.JSObject:
		_, ok := r.Get(key)
		return gcheap.Bool(ok), nil
	case *gcheap.JSArray:
		idx, err := parseArrayIndex(key)
		if err != nil {
			return gcheap.Bool(false), nil
		}
		return gcheap.Bool(idx >= 0 && idx < len(r.Elements)), nil
	default:
		return nil, newNotAnObjectError(p, "cannot use 'in' operator on non-object")
	}
}

// compareValues implements <, >, <=, >= with JS semantics: string
// operands compare lexicographically, everything else numerically.
func compareValues(left, right gcheap.Value, pred func(int) bool) gcheap.Value {
	lStr, lIsStr := left.(*gcheap.JSString)
	rStr, rIsStr := right.(*gcheap.JSString)
	if lIsStr && rIsStr {
		switch {
		case lStr.Value < rStr.Value:
			return gcheap.Bool(pred(-1))
		case lStr.Value > rStr.Value:
			return gcheap.Bool(pred(1))
		default:
			return gcheap.Bool(pred(0))
		}
	}
	l, r := ToNumber(left), ToNumber(right)
	if math.IsNaN(l) || math.IsNaN(r) {
		return gcheap.Bool(false)
	}
	switch {
	case l < r:
		return gcheap.Bool(pred(-1))
	case l > r:
		return gcheap.Bool(pred(1))
	default:
		return gcheap.Bool(pred(0))
	}
}
