package interp

import (
	"strings"

	"github.com/cwbudde/jsi/internal/ast"
	"github.com/cwbudde/jsi/internal/gcheap"
)

func (i *Interpreter) evalExpression(expr ast.Expression, env *gcheap.JSEnv) (gcheap.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return gcheap.Number(e.Value), nil
	case *ast.StringLiteral:
		return i.Heap.NewString(e.Value), nil
	case *ast.BooleanLiteral:
		return gcheap.Bool(e.Value), nil
	case *ast.NullLiteral:
		return gcheap.Null{}, nil
	case *ast.UndefinedLiteral:
		return gcheap.Undefined{}, nil
	case *ast.Identifier:
		return i.evalIdentifier(e, env)
	case *ast.TemplateLiteral:
		return i.evalTemplateLiteral(e, env)
	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(e, env)
	case *ast.ObjectLiteral:
		return i.evalObjectLiteral(e, env)
	case *ast.FunctionLiteral:
		return i.Heap.NewFunction(e.Name, e.Params, e.Body, nil, env), nil
	case *ast.ArrowFunctionLiteral:
		return i.Heap.NewFunction("", e.Params, e.Body, e.Expr, env), nil
	case *ast.UnaryExpression:
		return i.evalUnary(e, env)
	case *ast.BinaryExpression:
		return i.evalBinaryExpr(e, env)
	case *ast.ConditionalExpression:
		return i.evalConditional(e, env)
	case *ast.AssignmentExpression:
		return i.evalAssignment(e, env)
	case *ast.CallExpression:
		return i.evalCall(e, env)
	case *ast.MemberExpression:
		return i.evalMember(e, env)
	case *ast.IndexExpression:
		return i.evalIndex(e, env)
	}
	return gcheap.Undefined{}, nil
}

func (i *Interpreter) evalIdentifier(e *ast.Identifier, env *gcheap.JSEnv) (gcheap.Value, error) {
	if e.Name == "undefined" {
		return gcheap.Undefined{}, nil
	}
	b, ok := env.Resolve(e.Name)
	if !ok {
		return nil, newUndefinedVariableError(e.Pos(), "%s is not defined", e.Name)
	}
	return b.Value, nil
}

func (i *Interpreter) evalTemplateLiteral(e *ast.TemplateLiteral, env *gcheap.JSEnv) (gcheap.Value, error) {
	var sb strings.Builder
	for idx, part := range e.Parts {
		sb.WriteString(part)
		if idx < len(e.Exprs) {
			v, err := i.evalExpression(e.Exprs[idx], env)
			if err != nil {
				return nil, err
			}
			sb.WriteString(ToStringValue(v))
		}
	}
	return i.Heap.NewString(sb.String()), nil
}

func (i *Interpreter) evalArrayLiteral(e *ast.ArrayLiteral, env *gcheap.JSEnv) (gcheap.Value, error) {
	elems := make([]gcheap.Value, len(e.Elements))
	for idx, el := range e.Elements {
		v, err := i.evalExpression(el, env)
		if err != nil {
			return nil, err
		}
		elems[idx] = v
	}
	return i.Heap.NewArray(elems), nil
}

func (i *Interpreter) evalObjectLiteral(e *ast.ObjectLiteral, env *gcheap.JSEnv) (gcheap.Value, error) {
	obj := i.Heap.NewObject()
	for _, prop := range e.Properties {
		var key string
		switch k := prop.Key.(type) {
		case *ast.Identifier:
			key = k.Name
		case *ast.StringLiteral:
			key = k.Value
		}
		v, err := i.evalExpression(prop.Value, env)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	return obj, nil
}

func (i *Interpreter) evalConditional(e *ast.ConditionalExpression, env *gcheap.JSEnv) (gcheap.Value, error) {
	cond, err := i.evalExpression(e.Condition, env)
	if err != nil {
		return nil, err
	}
	if gcheap.Truthy(cond) {
		return i.evalExpression(e.Then, env)
	}
	return i.evalExpression(e.Else, env)
}

func (i *Interpreter) evalMember(e *ast.MemberExpression, env *gcheap.JSEnv) (gcheap.Value, error) {
	obj, err := i.evalExpression(e.Object, env)
	if err != nil {
		return nil, err
	}
	if e.Optional && isNullish(obj) {
		return gcheap.Undefined{}, nil
	}
	return i.getProperty(obj, e.Property, e.Pos())
}

func (i *Interpreter) evalIndex(e *ast.IndexExpression, env *gcheap.JSEnv) (gcheap.Value, error) {
	obj, err := i.evalExpression(e.Object, env)
	if err != nil {
		return nil, err
	}
	if e.Optional && isNullish(obj) {
		return gcheap.Undefined{}, nil
	}
	idx, err := i.evalExpression(e.Index, env)
	if err != nil {
		return nil, err
	}
	return i.getIndexed(obj, idx, e.Pos())
}

func isNullish(v gcheap.Value) bool {
	switch v.(type) {
	case gcheap.Null, gcheap.Undefined:
		return true
	}
	return v == nil
}
