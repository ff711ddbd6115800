package interp

import (
	"github.com/cwbudde/jsi/internal/ast"
	"github.com/cwbudde/jsi/internal/gcheap"
	"github.com/cwbudde/jsi/internal/token"
)

const maxCallDepth = 2000

func (i *Interpreter) evalCall(e *ast.CallExpression, env *gcheap.JSEnv) (gcheap.Value, error) {
	callee, err := i.evalExpression(e.Callee, env)
	if err != nil {
		return nil, err
	}
	if e.Optional && isNullish(callee) {
		return gcheap.Undefined{}, nil
	}

	args := make([]gcheap.Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.evalExpression(a, env)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	return i.invoke(callee, args, e.Pos())
}

func (i *Interpreter) invoke(callee gcheap.Value, args []gcheap.Value, pos token.Position) (gcheap.Value, error) {
	switch fn := callee.(type) {
	case *gcheap.NativeFunction:
		v, err := fn.Fn(args)
		if err != nil {
			return nil, newTypeError(pos, "%s", err.Error())
		}
		return v, nil

	case *gcheap.JSFunction:
		return i.invokeUserFunction(fn, args, pos)

	default:
		return nil, newNotCallableError(pos, "value is not callable")
	}
}

func (i *Interpreter) invokeUserFunction(fn *gcheap.JSFunction, args []gcheap.Value, pos token.Position) (gcheap.Value, error) {
	i.callDepth++
	defer func() { i.callDepth-- }()
	if i.callDepth > maxCallDepth {
		return nil, newTypeError(pos, "maximum call stack size exceeded")
	}

	if len(args) > len(fn.Params) {
		return nil, newTooManyArgumentsError(pos, "expected at most %d argument(s), got %d", len(fn.Params), len(args))
	}

	callEnv := i.Heap.NewEnv(fn.Closure)
	for idx, param := range fn.Params {
		var v gcheap.Value = gcheap.Undefined{}
		if idx < len(args) {
			v = args[idx]
		}
		callEnv.Define(param.Name, v, false)
	}

	i.pushEnv(callEnv)
	defer i.popEnv()

	if fn.Expr != nil {
		return i.evalExpression(fn.Expr, callEnv)
	}
	if fn.Body == nil {
		return gcheap.Undefined{}, nil
	}

	comp, err := i.execBlock(fn.Body, callEnv)
	if err != nil {
		return nil, err
	}
	if comp.Kind == CReturn {
		return comp.Value, nil
	}
	return gcheap.Undefined{}, nil
}
