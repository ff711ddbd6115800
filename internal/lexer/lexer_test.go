package lexer

import (
	"testing"

	"github.com/cwbudde/jsi/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectKinds(t *testing.T, input string) []token.Kind {
	t.Helper()
	l := New(input)
	var kinds []token.Kind
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	return kinds
}

func TestNextTokenBasicOperators(t *testing.T) {
	input := `let x = 1 + 2 * 3 / 4 - 5 % 6;`
	kinds := collectKinds(t, input)
	require.NotEmpty(t, kinds)
	assert.Equal(t, token.LET, kinds[0])
	assert.Equal(t, token.IDENT, kinds[1])
	assert.Equal(t, token.ASSIGN, kinds[2])
	assert.Equal(t, token.EOF, kinds[len(kinds)-1])
}

func TestNextTokenMultiCharOperators(t *testing.T) {
	l := New("=== !== >>> ??= ?. =>")
	var lexemes []string
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		lexemes = append(lexemes, tok.Lexeme)
	}
	assert.Equal(t, []string{"===", "!==", ">>>", "??=", "?.", "=>"}, lexemes)
}

func TestNextTokenStringLiteral(t *testing.T) {
	l := New(`"hello\nworld"`)
	tok := l.NextToken()
	assert.Equal(t, token.STRING_LITERAL, tok.Kind)
	assert.Equal(t, "hello\nworld", tok.Lexeme)
}

func TestNextTokenUnterminatedString(t *testing.T) {
	l := New("\"oops\n")
	l.NextToken()
	require.Len(t, l.Errors(), 1)
	assert.Equal(t, UnterminatedStringLiteral, l.Errors()[0].Kind)
}

func TestNextTokenNumberForms(t *testing.T) {
	cases := []string{"123", "1.5", "0x1F", "0b101", "0o17", "1e10", "1_000", "123n"}
	for _, c := range cases {
		l := New(c)
		tok := l.NextToken()
		assert.Containsf(t, []token.Kind{token.NUMERIC_LITERAL, token.BIGINT_LITERAL}, tok.Kind, "input %q", c)
		assert.Equal(t, c, tok.Lexeme)
	}
}

func TestNextTokenInvalidExponent(t *testing.T) {
	l := New("1e")
	l.NextToken()
	require.Len(t, l.Errors(), 1)
	assert.Equal(t, InvalidExponent, l.Errors()[0].Kind)
}

func TestTemplateLiteralSimple(t *testing.T) {
	l := New("`hello ${name}!`")
	kinds := []token.Kind{}
	lexemes := []string{}
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Kind)
		lexemes = append(lexemes, tok.Lexeme)
		if tok.Kind == token.EOF {
			break
		}
	}
	assert.Equal(t, []token.Kind{
		token.TEMPLATE_START,
		token.TEMPLATE_EXPR_START,
		token.IDENT,
		token.TEMPLATE_EXPR_END,
		token.TEMPLATE_STRING,
		token.TEMPLATE_END,
		token.EOF,
	}, kinds)
	assert.Equal(t, "hello ", lexemes[0])
	assert.Equal(t, "name", lexemes[2])
}

func TestTemplateLiteralNestedBraces(t *testing.T) {
	l := New("`${ {a: 1}.a }`")
	var kinds []token.Kind
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	// The object literal's braces must not be mistaken for the end of
	// the interpolation.
	assert.Contains(t, kinds, token.LBRACE)
	assert.Contains(t, kinds, token.RBRACE)
	assert.Contains(t, kinds, token.TEMPLATE_EXPR_END)
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("a b c")
	first := l.Peek(0)
	second := l.Peek(1)
	assert.Equal(t, "a", first.Lexeme)
	assert.Equal(t, "b", second.Lexeme)
	// NextToken should still yield "a" first.
	assert.Equal(t, "a", l.NextToken().Lexeme)
	assert.Equal(t, "b", l.NextToken().Lexeme)
}

func TestSaveRestoreState(t *testing.T) {
	l := New("foo bar baz")
	state := l.SaveState()
	first := l.NextToken()
	assert.Equal(t, "foo", first.Lexeme)
	l.RestoreState(state)
	again := l.NextToken()
	assert.Equal(t, "foo", again.Lexeme)
}

func TestLineCommentSkipped(t *testing.T) {
	kinds := collectKinds(t, "let x = 1; // trailing comment\nlet y = 2;")
	assert.Equal(t, token.LET, kinds[0])
}

func TestBlockCommentSkipped(t *testing.T) {
	kinds := collectKinds(t, "let /* inline */ x = 1;")
	assert.Equal(t, token.LET, kinds[0])
	assert.Equal(t, token.IDENT, kinds[1])
}

func TestShebangSkipped(t *testing.T) {
	l := New("#!/usr/bin/env jsi\nlet x = 1;")
	tok := l.NextToken()
	assert.Equal(t, token.LET, tok.Kind)
}

func TestPrivateMarker(t *testing.T) {
	l := New("#field")
	tok := l.NextToken()
	assert.Equal(t, token.PRIVATE, tok.Kind)
	assert.Equal(t, "#field", tok.Lexeme)
	assert.Empty(t, l.Errors())
}

func TestPrivateMarkerWithoutIdentifierIsUnexpectedCharacter(t *testing.T) {
	l := New("#1")
	l.NextToken()
	require.Len(t, l.Errors(), 1)
	assert.Equal(t, UnexpectedCharacter, l.Errors()[0].Kind)
}

func TestUnrecognizedByteIsNotFound(t *testing.T) {
	l := New("@")
	l.NextToken()
	require.Len(t, l.Errors(), 1)
	assert.Equal(t, NotFound, l.Errors()[0].Kind)
}

func TestKeywordLookup(t *testing.T) {
	l := New("function let const var if else for while return break continue typeof void delete instanceof in true false null somename")
	wantKinds := []token.Kind{
		token.FUNCTION, token.LET, token.CONST, token.VAR, token.IF, token.ELSE,
		token.FOR, token.WHILE, token.RETURN, token.BREAK, token.CONTINUE,
		token.TYPEOF, token.VOID, token.DELETE, token.INSTANCEOF, token.IN,
		token.BOOL_LITERAL, token.BOOL_LITERAL, token.NULL_LITERAL, token.IDENT,
	}
	for _, want := range wantKinds {
		tok := l.NextToken()
		assert.Equal(t, want, tok.Kind, "lexeme %q", tok.Lexeme)
	}
}
