package interp

import (
	"strings"

	"github.com/cwbudde/jsi/internal/ast"
	"github.com/cwbudde/jsi/internal/gcheap"
	"github.com/cwbudde/jsi/internal/token"
)

func (i *Interpreter) evalAssignment(e *ast.AssignmentExpression, env *gcheap.JSEnv) (gcheap.Value, error) {
	rhs, err := i.evalExpression(e.Value, env)
	if err != nil {
		return nil, err
	}

	switch target := e.Target.(type) {
	case *ast.Identifier:
		b, found := env.Resolve(target.Name)
		if !found {
			return nil, newUndefinedVariableError(e.Pos(), "%s is not defined", target.Name)
		}
		if b.Const {
			return nil, newTypeError(e.Pos(), "assignment to constant variable %q", target.Name)
		}
		final, err := i.combine(e.Operator, b.Value, rhs, e.Pos())
		if err != nil {
			return nil, err
		}
		b.Value = final
		return final, nil

	case *ast.MemberExpression:
		obj, err := i.evalExpression(target.Object, env)
		if err != nil {
			return nil, err
		}
		cur, _ := i.getProperty(obj, target.Property, e.Pos())
		final, err := i.combine(e.Operator, cur, rhs, e.Pos())
		if err != nil {
			return nil, err
		}
		if err := i.setProperty(obj, target.Property, final, e.Pos()); err != nil {
			return nil, err
		}
		return final, nil

	case *ast.IndexExpression:
		obj, err := i.evalExpression(target.Object, env)
		if err != nil {
			return nil, err
		}
		idx, err := i.evalExpression(target.Index, env)
		if err != nil {
			return nil, err
		}
		cur, _ := i.getIndexed(obj, idx, e.Pos())
		final, err := i.combine(e.Operator, cur, rhs, e.Pos())
		if err != nil {
			return nil, err
		}
		if err := i.setIndexed(obj, idx, final, e.Pos()); err != nil {
			return nil, err
		}
		return final, nil
	}

	return nil, newTypeError(e.Pos(), "invalid assignment target")
}

// combine applies the compound-assignment operator (e.g. "+=" -> "+") to
// cur and rhs, or returns rhs unchanged for plain "=".
func (i *Interpreter) combine(op string, cur, rhs gcheap.Value, pos token.Position) (gcheap.Value, error) {
	if op == "=" {
		return rhs, nil
	}
	if op == "&&=" {
		if !gcheap.Truthy(cur) {
			return cur, nil
		}
		return rhs, nil
	}
	if op == "||=" {
		if gcheap.Truthy(cur) {
			return cur, nil
		}
		return rhs, nil
	}
	if op == "??=" {
		if !isNullish(cur) {
			return cur, nil
		}
		return rhs, nil
	}
	baseOp := strings.TrimSuffix(op, "=")
	return i.applyBinaryOp(baseOp, cur, rhs, pos)
}
