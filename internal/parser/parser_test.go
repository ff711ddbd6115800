package parser

import (
	"testing"

	"github.com/cwbudde/jsi/internal/ast"
	"github.com/cwbudde/jsi/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	p := New(l)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors(), "parser errors: %v", p.Errors())
	require.Empty(t, p.LexerErrors(), "lexer errors: %v", p.LexerErrors())
	return prog
}

func TestParseVarDeclStatement(t *testing.T) {
	prog := parseProgram(t, "let x = 1, y = 2;")
	require.Len(t, prog.Statements, 1)
	stmt := prog.Statements[0].(*ast.VarDeclStatement)
	assert.Equal(t, ast.DeclLet, stmt.Kind)
	require.Len(t, stmt.Declarations, 2)
	assert.Equal(t, "x", stmt.Declarations[0].Name.Name)
	assert.Equal(t, "y", stmt.Declarations[1].Name.Name)
}

func TestParseConstWithoutInitializerErrors(t *testing.T) {
	l := lexer.New("const x;")
	p := New(l)
	p.ParseProgram()
	require.Len(t, p.Errors(), 1)
	assert.Equal(t, ConstantWithoutInitializer, p.Errors()[0].Kind)
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parseProgram(t, "1 + 2 * 3;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	bin := stmt.Expr.(*ast.BinaryExpression)
	assert.Equal(t, "+", bin.Operator)
	_, ok := bin.Left.(*ast.NumberLiteral)
	require.True(t, ok)
	rhs := bin.Right.(*ast.BinaryExpression)
	assert.Equal(t, "*", rhs.Operator)
}

func TestParseExponentRightAssociative(t *testing.T) {
	prog := parseProgram(t, "2 ** 3 ** 2;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	bin := stmt.Expr.(*ast.BinaryExpression)
	assert.Equal(t, "**", bin.Operator)
	_, ok := bin.Left.(*ast.NumberLiteral)
	require.True(t, ok)
	rhs, ok := bin.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "**", rhs.Operator)
}

func TestParseTernary(t *testing.T) {
	prog := parseProgram(t, "a ? b : c;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	cond := stmt.Expr.(*ast.ConditionalExpression)
	assert.Equal(t, "a", cond.Condition.String())
	assert.Equal(t, "b", cond.Then.String())
	assert.Equal(t, "c", cond.Else.String())
}

func TestParseIfElse(t *testing.T) {
	prog := parseProgram(t, "if (a) { b; } else { c; }")
	stmt := prog.Statements[0].(*ast.IfStatement)
	assert.NotNil(t, stmt.Then)
	assert.NotNil(t, stmt.Alt)
}

func TestParseForLoopAllClauses(t *testing.T) {
	prog := parseProgram(t, "for (let i = 0; i < 10; i = i + 1) { x; }")
	stmt := prog.Statements[0].(*ast.ForStatement)
	require.NotNil(t, stmt.Init)
	require.NotNil(t, stmt.Condition)
	require.NotNil(t, stmt.Update)
}

func TestParseForLoopEmptyClauses(t *testing.T) {
	prog := parseProgram(t, "for (;;) { break; }")
	stmt := prog.Statements[0].(*ast.ForStatement)
	assert.Nil(t, stmt.Init)
	assert.Nil(t, stmt.Condition)
	assert.Nil(t, stmt.Update)
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := parseProgram(t, "function add(a, b) { return a + b; }")
	stmt := prog.Statements[0].(*ast.FunctionDeclaration)
	assert.Equal(t, "add", stmt.Fn.Name)
	require.Len(t, stmt.Fn.Params, 2)
	require.Len(t, stmt.Fn.Body.Statements, 1)
}

func TestParseArrowFunctionParenParams(t *testing.T) {
	prog := parseProgram(t, "let f = (a, b) => a + b;")
	stmt := prog.Statements[0].(*ast.VarDeclStatement)
	arrow := stmt.Declarations[0].Init.(*ast.ArrowFunctionLiteral)
	require.Len(t, arrow.Params, 2)
	require.NotNil(t, arrow.Expr)
	assert.Nil(t, arrow.Body)
}

func TestParseArrowFunctionBareIdentifier(t *testing.T) {
	prog := parseProgram(t, "let f = x => x * 2;")
	stmt := prog.Statements[0].(*ast.VarDeclStatement)
	arrow := stmt.Declarations[0].Init.(*ast.ArrowFunctionLiteral)
	require.Len(t, arrow.Params, 1)
	assert.Equal(t, "x", arrow.Params[0].Name)
}

func TestParseArrowFunctionBlockBody(t *testing.T) {
	prog := parseProgram(t, "let f = (a) => { return a; };")
	stmt := prog.Statements[0].(*ast.VarDeclStatement)
	arrow := stmt.Declarations[0].Init.(*ast.ArrowFunctionLiteral)
	require.NotNil(t, arrow.Body)
	assert.Nil(t, arrow.Expr)
}

func TestParseGroupedExpressionIsNotArrow(t *testing.T) {
	prog := parseProgram(t, "(1 + 2) * 3;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	bin := stmt.Expr.(*ast.BinaryExpression)
	assert.Equal(t, "*", bin.Operator)
}

func TestParseCallExpression(t *testing.T) {
	prog := parseProgram(t, "foo(1, 2, 3);")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	call := stmt.Expr.(*ast.CallExpression)
	assert.Equal(t, "foo", call.Callee.String())
	require.Len(t, call.Args, 3)
}

func TestParseMemberAndIndexExpression(t *testing.T) {
	prog := parseProgram(t, "a.b[0];")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	idx := stmt.Expr.(*ast.IndexExpression)
	member := idx.Object.(*ast.MemberExpression)
	assert.Equal(t, "b", member.Property)
}

func TestParseOptionalChaining(t *testing.T) {
	prog := parseProgram(t, "a?.b;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	member := stmt.Expr.(*ast.MemberExpression)
	assert.True(t, member.Optional)
}

func TestParseAssignmentToInvalidTargetErrors(t *testing.T) {
	l := lexer.New("1 = 2;")
	p := New(l)
	p.ParseProgram()
	require.Len(t, p.Errors(), 1)
	assert.Equal(t, InvalidAssignmentTarget, p.Errors()[0].Kind)
}

func TestParseObjectLiteral(t *testing.T) {
	prog := parseProgram(t, `let o = {a: 1, "b": 2};`)
	stmt := prog.Statements[0].(*ast.VarDeclStatement)
	obj := stmt.Declarations[0].Init.(*ast.ObjectLiteral)
	require.Len(t, obj.Properties, 2)
	assert.Equal(t, "a", obj.Properties[0].Key.String())
}

func TestParseArrayLiteral(t *testing.T) {
	prog := parseProgram(t, "let a = [1, 2, 3];")
	stmt := prog.Statements[0].(*ast.VarDeclStatement)
	arr := stmt.Declarations[0].Init.(*ast.ArrayLiteral)
	require.Len(t, arr.Elements, 3)
}

func TestParseTemplateLiteral(t *testing.T) {
	prog := parseProgram(t, "`hi ${name}!`;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	tpl := stmt.Expr.(*ast.TemplateLiteral)
	require.Len(t, tpl.Parts, 2)
	require.Len(t, tpl.Exprs, 1)
	assert.Equal(t, "name", tpl.Exprs[0].String())
}

func TestParseUnexpectedTokenProducesError(t *testing.T) {
	l := lexer.New(") ;")
	p := New(l)
	p.ParseProgram()
	require.NotEmpty(t, p.Errors())
}
