package ast

import (
	"testing"

	"github.com/cwbudde/jsi/internal/token"
	"github.com/stretchr/testify/assert"
)

func ident(name string) *Identifier {
	return &Identifier{Token: token.Token{Lexeme: name}, Name: name}
}

func TestProgramString(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			&ExpressionStatement{Expr: ident("x")},
		},
	}
	assert.Equal(t, "x\n", prog.String())
}

func TestProgramTokenLiteralEmpty(t *testing.T) {
	prog := &Program{}
	assert.Equal(t, "", prog.TokenLiteral())
	assert.Equal(t, token.Position{}, prog.Pos())
}

func TestBinaryExpressionString(t *testing.T) {
	b := &BinaryExpression{Left: ident("a"), Operator: "+", Right: ident("b")}
	assert.Equal(t, "(a + b)", b.String())
}

func TestConditionalExpressionString(t *testing.T) {
	c := &ConditionalExpression{Condition: ident("a"), Then: ident("b"), Else: ident("c")}
	assert.Equal(t, "(a ? b : c)", c.String())
}

func TestArrayLiteralString(t *testing.T) {
	a := &ArrayLiteral{Elements: []Expression{ident("a"), ident("b")}}
	assert.Equal(t, "[a, b]", a.String())
}

func TestObjectLiteralString(t *testing.T) {
	o := &ObjectLiteral{Properties: []ObjectProperty{
		{Key: ident("k"), Value: ident("v")},
	}}
	assert.Equal(t, "{k: v}", o.String())
}

func TestFunctionLiteralString(t *testing.T) {
	f := &FunctionLiteral{
		Name:   "add",
		Params: []*Identifier{ident("a"), ident("b")},
		Body:   &BlockStatement{},
	}
	assert.Equal(t, "function add(a, b) {\n}", f.String())
}

func TestArrowFunctionConciseBodyString(t *testing.T) {
	a := &ArrowFunctionLiteral{
		Params: []*Identifier{ident("x")},
		Expr:   ident("x"),
	}
	assert.Equal(t, "(x) => x", a.String())
}

func TestForStatementNilClausesString(t *testing.T) {
	f := &ForStatement{Body: &BlockStatement{}}
	assert.Equal(t, "for (; ; ) {\n}", f.String())
}

func TestMemberExpressionOptionalString(t *testing.T) {
	m := &MemberExpression{Object: ident("a"), Property: "b", Optional: true}
	assert.Equal(t, "a?.b", m.String())
}

func TestDeclKindString(t *testing.T) {
	assert.Equal(t, "let", DeclLet.String())
	assert.Equal(t, "const", DeclConst.String())
	assert.Equal(t, "var", DeclVar.String())
}

func TestVarDeclStatementString(t *testing.T) {
	v := &VarDeclStatement{
		Kind: DeclConst,
		Declarations: []VarDeclarator{
			{Name: ident("x"), Init: ident("1")},
		},
	}
	assert.Equal(t, "const x = 1;", v.String())
}
