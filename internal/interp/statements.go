package interp

import (
	"github.com/cwbudde/jsi/internal/ast"
	"github.com/cwbudde/jsi/internal/gcheap"
)

// execStatement executes stmt in env and returns how it completed.
func (i *Interpreter) execStatement(stmt ast.Statement, env *gcheap.JSEnv) (Completion, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		if s.Expr == nil {
			return normalCompletion, nil
		}
		v, err := i.evalExpression(s.Expr, env)
		if err != nil {
			return Completion{}, err
		}
		return Completion{Kind: CNormal, Value: v}, nil

	case *ast.VarDeclStatement:
		return i.execVarDecl(s, env)

	case *ast.FunctionDeclaration:
		fn := i.Heap.NewFunction(s.Fn.Name, s.Fn.Params, s.Fn.Body, nil, env)
		env.Define(s.Fn.Name, fn, false)
		return normalCompletion, nil

	case *ast.BlockStatement:
		// Each block introduces its own child scope, so
		// `{ let x = 1; }` does not leak x outward.
		child := i.Heap.NewEnv(env)
		return i.execBlock(s, child)

	case *ast.IfStatement:
		return i.execIf(s, env)

	case *ast.WhileStatement:
		return i.execWhile(s, env)

	case *ast.ForStatement:
		return i.execFor(s, env)

	case *ast.ReturnStatement:
		var v gcheap.Value = gcheap.Undefined{}
		if s.Expr != nil {
			var err error
			v, err = i.evalExpression(s.Expr, env)
			if err != nil {
				return Completion{}, err
			}
		}
		return Completion{Kind: CReturn, Value: v}, nil

	case *ast.BreakStatement:
		return Completion{Kind: CBreak}, nil

	case *ast.ContinueStatement:
		return Completion{Kind: CContinue}, nil

	default:
		return normalCompletion, nil
	}
}

// execBlock runs every statement of block in env, stopping early and
// propagating the first non-Normal completion (or error).
func (i *Interpreter) execBlock(block *ast.BlockStatement, env *gcheap.JSEnv) (Completion, error) {
	i.pushEnv(env)
	defer i.popEnv()

	result := normalCompletion
	for _, stmt := range block.Statements {
		comp, err := i.execStatement(stmt, env)
		if err != nil {
			return Completion{}, err
		}
		if comp.Kind != CNormal {
			return comp, nil
		}
		if comp.Value != nil {
			result = comp
		}
	}
	return result, nil
}

func (i *Interpreter) execVarDecl(s *ast.VarDeclStatement, env *gcheap.JSEnv) (Completion, error) {
	isConst := s.Kind == ast.DeclConst
	for _, decl := range s.Declarations {
		var v gcheap.Value = gcheap.Undefined{}
		if decl.Init != nil {
			var err error
			v, err = i.evalExpression(decl.Init, env)
			if err != nil {
				return Completion{}, err
			}
		}
		env.Define(decl.Name.Name, v, isConst)
	}
	return normalCompletion, nil
}

func (i *Interpreter) execIf(s *ast.IfStatement, env *gcheap.JSEnv) (Completion, error) {
	cond, err := i.evalExpression(s.Condition, env)
	if err != nil {
		return Completion{}, err
	}
	if gcheap.Truthy(cond) {
		return i.execStatement(s.Then, env)
	}
	if s.Alt != nil {
		return i.execStatement(s.Alt, env)
	}
	return normalCompletion, nil
}

func (i *Interpreter) execWhile(s *ast.WhileStatement, env *gcheap.JSEnv) (Completion, error) {
	for {
		cond, err := i.evalExpression(s.Condition, env)
		if err != nil {
			return Completion{}, err
		}
		if !gcheap.Truthy(cond) {
			return normalCompletion, nil
		}
		comp, err := i.execStatement(s.Body, env)
		if err != nil {
			return Completion{}, err
		}
		switch comp.Kind {
		case CBreak:
			return normalCompletion, nil
		case CReturn:
			return comp, nil
		case CContinue, CNormal:
			// fall through to next iteration
		}
		i.collectIfNeeded()
	}
}

func (i *Interpreter) execFor(s *ast.ForStatement, env *gcheap.JSEnv) (Completion, error) {
	// The for-loop gets its own scope so an `let i` in the init clause is
	// visible to condition/update/body but not beyond the loop.
	loopEnv := i.Heap.NewEnv(env)
	i.pushEnv(loopEnv)
	defer i.popEnv()

	if s.Init != nil {
		if _, err := i.execStatement(s.Init, loopEnv); err != nil {
			return Completion{}, err
		}
	}

	for {
		if s.Condition != nil {
			cond, err := i.evalExpression(s.Condition, loopEnv)
			if err != nil {
				return Completion{}, err
			}
			if !gcheap.Truthy(cond) {
				return normalCompletion, nil
			}
		}

		comp, err := i.execStatement(s.Body, loopEnv)
		if err != nil {
			return Completion{}, err
		}
		switch comp.Kind {
		case CBreak:
			return normalCompletion, nil
		case CReturn:
			return comp, nil
		}

		if s.Update != nil {
			if _, err := i.evalExpression(s.Update, loopEnv); err != nil {
				return Completion{}, err
			}
		}
		i.collectIfNeeded()
	}
}
