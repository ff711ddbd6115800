// Package parser implements a recursive-descent, Pratt-style parser that
// turns a token stream from internal/lexer into an internal/ast tree.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/jsi/internal/ast"
	"github.com/cwbudde/jsi/internal/lexer"
	"github.com/cwbudde/jsi/internal/token"
)

// Precedence levels, lowest to highest, per the operator ladder.
const (
	LOWEST int = iota
	ASSIGNMENT
	CONDITIONAL
	NULLISH
	LOGICAL_OR
	LOGICAL_AND
	BITWISE_OR
	BITWISE_XOR
	BITWISE_AND
	EQUALITY
	RELATIONAL
	SHIFT
	ADDITIVE
	MULTIPLICATIVE
	EXPONENT
	UNARY
	UPDATE
	CALL
)

var precedences = map[token.Kind]int{
	token.ASSIGN:               ASSIGNMENT,
	token.PLUS_EQ:              ASSIGNMENT,
	token.MINUS_EQ:             ASSIGNMENT,
	token.STAR_EQ:              ASSIGNMENT,
	token.SLASH_EQ:             ASSIGNMENT,
	token.PERCENT_EQ:           ASSIGNMENT,
	token.STAR_STAR_EQ:         ASSIGNMENT,
	token.AMP_EQ:               ASSIGNMENT,
	token.PIPE_EQ:              ASSIGNMENT,
	token.CARET_EQ:             ASSIGNMENT,
	token.SHL_EQ:               ASSIGNMENT,
	token.SHR_EQ:               ASSIGNMENT,
	token.USHR_EQ:              ASSIGNMENT,
	token.AND_AND_EQ:           ASSIGNMENT,
	token.OR_OR_EQ:             ASSIGNMENT,
	token.QUESTION_QUESTION_EQ: ASSIGNMENT,
	token.QUESTION:             CONDITIONAL,
	token.QUESTION_QUESTION:    NULLISH,
	token.OR_OR:                LOGICAL_OR,
	token.AND_AND:              LOGICAL_AND,
	token.PIPE:                 BITWISE_OR,
	token.CARET:                BITWISE_XOR,
	token.AMP:                  BITWISE_AND,
	token.EQ:                   EQUALITY,
	token.NOT_EQ:               EQUALITY,
	token.EQ_EQ_EQ:             EQUALITY,
	token.NOT_EQ_EQ:            EQUALITY,
	token.LT:                   RELATIONAL,
	token.GT:                   RELATIONAL,
	token.LT_EQ:                RELATIONAL,
	token.GT_EQ:                RELATIONAL,
	token.INSTANCEOF:           RELATIONAL,
	token.IN:                   RELATIONAL,
	token.SHL:                  SHIFT,
	token.SHR:                  SHIFT,
	token.USHR:                 SHIFT,
	token.PLUS:                 ADDITIVE,
	token.MINUS:                ADDITIVE,
	token.STAR:                 MULTIPLICATIVE,
	token.SLASH:                MULTIPLICATIVE,
	token.PERCENT:              MULTIPLICATIVE,
	token.STAR_STAR:            EXPONENT,
	token.INC:                  UPDATE,
	token.DEC:                  UPDATE,
	token.LPAREN:               CALL,
	token.DOT:                  CALL,
	token.QUESTION_DOT:         CALL,
	token.LBRACK:                CALL,
	token.ARROW:                 CONDITIONAL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes tokens from a Lexer and builds an ast.Program.
type Parser struct {
	l *lexer.Lexer

	curTok  token.Token
	peekTok token.Token

	errors []*Error

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn
}

// New creates a Parser reading from l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixFns = map[token.Kind]prefixParseFn{}
	p.infixFns = map[token.Kind]infixParseFn{}

	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.NUMERIC_LITERAL, p.parseNumberLiteral)
	p.registerPrefix(token.BIGINT_LITERAL, p.parseNumberLiteral)
	p.registerPrefix(token.STRING_LITERAL, p.parseStringLiteral)
	p.registerPrefix(token.BOOL_LITERAL, p.parseBooleanLiteral)
	p.registerPrefix(token.NULL_LITERAL, p.parseNullLiteral)
	p.registerPrefix(token.TEMPLATE_START, p.parseTemplateLiteral)
	p.registerPrefix(token.BANG, p.parseUnaryExpression)
	p.registerPrefix(token.MINUS, p.parseUnaryExpression)
	p.registerPrefix(token.PLUS, p.parseUnaryExpression)
	p.registerPrefix(token.TILDE, p.parseUnaryExpression)
	p.registerPrefix(token.TYPEOF, p.parseUnaryExpression)
	p.registerPrefix(token.VOID, p.parseUnaryExpression)
	p.registerPrefix(token.DELETE, p.parseUnaryExpression)
	p.registerPrefix(token.INC, p.parsePrefixUpdateExpression)
	p.registerPrefix(token.DEC, p.parsePrefixUpdateExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedOrArrow)
	p.registerPrefix(token.LBRACK, p.parseArrayLiteral)
	p.registerPrefix(token.LBRACE, p.parseObjectLiteral)
	p.registerPrefix(token.FUNCTION, p.parseFunctionLiteral)

	p.registerInfix(token.PLUS, p.parseBinaryExpression)
	p.registerInfix(token.MINUS, p.parseBinaryExpression)
	p.registerInfix(token.STAR, p.parseBinaryExpression)
	p.registerInfix(token.SLASH, p.parseBinaryExpression)
	p.registerInfix(token.PERCENT, p.parseBinaryExpression)
	p.registerInfix(token.STAR_STAR, p.parseBinaryExpressionRightAssoc)
	p.registerInfix(token.EQ, p.parseBinaryExpression)
	p.registerInfix(token.NOT_EQ, p.parseBinaryExpression)
	p.registerInfix(token.EQ_EQ_EQ, p.parseBinaryExpression)
	p.registerInfix(token.NOT_EQ_EQ, p.parseBinaryExpression)
	p.registerInfix(token.LT, p.parseBinaryExpression)
	p.registerInfix(token.GT, p.parseBinaryExpression)
	p.registerInfix(token.LT_EQ, p.parseBinaryExpression)
	p.registerInfix(token.GT_EQ, p.parseBinaryExpression)
	p.registerInfix(token.INSTANCEOF, p.parseBinaryExpression)
	p.registerInfix(token.IN, p.parseBinaryExpression)
	p.registerInfix(token.SHL, p.parseBinaryExpression)
	p.registerInfix(token.SHR, p.parseBinaryExpression)
	p.registerInfix(token.USHR, p.parseBinaryExpression)
	p.registerInfix(token.AMP, p.parseBinaryExpression)
	p.registerInfix(token.PIPE, p.parseBinaryExpression)
	p.registerInfix(token.CARET, p.parseBinaryExpression)
	p.registerInfix(token.AND_AND, p.parseBinaryExpression)
	p.registerInfix(token.OR_OR, p.parseBinaryExpression)
	p.registerInfix(token.QUESTION_QUESTION, p.parseBinaryExpression)
	p.registerInfix(token.QUESTION, p.parseConditionalExpression)
	p.registerInfix(token.ASSIGN, p.parseAssignmentExpression)
	p.registerInfix(token.PLUS_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.MINUS_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.STAR_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.SLASH_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.PERCENT_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.STAR_STAR_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.AMP_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.PIPE_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.CARET_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.SHL_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.SHR_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.USHR_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.AND_AND_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.OR_OR_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.QUESTION_QUESTION_EQ, p.parseAssignmentExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.DOT, p.parseMemberExpression)
	p.registerInfix(token.QUESTION_DOT, p.parseMemberExpression)
	p.registerInfix(token.LBRACK, p.parseIndexExpression)
	p.registerInfix(token.INC, p.parsePostfixUpdateExpression)
	p.registerInfix(token.DEC, p.parsePostfixUpdateExpression)
	p.registerInfix(token.ARROW, p.parseBareArrowFunction)

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(k token.Kind, fn prefixParseFn) { p.prefixFns[k] = fn }
func (p *Parser) registerInfix(k token.Kind, fn infixParseFn)   { p.infixFns[k] = fn }

// Errors returns accumulated parse errors.
func (p *Parser) Errors() []*Error { return p.errors }

// LexerErrors returns accumulated lexer-level errors.
func (p *Parser) LexerErrors() []lexer.Error { return p.l.Errors() }

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

func (p *Parser) curTokenIs(k token.Kind) bool  { return p.curTok.Kind == k }
func (p *Parser) peekTokenIs(k token.Kind) bool { return p.peekTok.Kind == k }

func (p *Parser) expectPeek(k token.Kind) bool {
	if p.peekTokenIs(k) {
		p.nextToken()
		return true
	}
	p.peekError(k)
	return false
}

func (p *Parser) peekError(k token.Kind) {
	p.errors = append(p.errors, &Error{
		Kind:    ExpectedToken,
		Message: fmt.Sprintf("expected next token to be %s, got %s instead", k, p.peekTok.Kind),
		Pos:     p.peekTok.Start,
	})
}

func (p *Parser) curError(msg string) {
	p.errors = append(p.errors, &Error{Kind: UnexpectedToken, Message: msg, Pos: p.curTok.Start})
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekTok.Kind]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curTok.Kind]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses the whole token stream into a Program node.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.nextToken()
	}
	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curTok.Kind {
	case token.LET, token.CONST, token.VAR:
		return p.parseVarDeclStatement()
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMICOLON:
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) skipSemicolon() {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

func declKindFor(k token.Kind) ast.DeclKind {
	switch k {
	case token.CONST:
		return ast.DeclConst
	case token.VAR:
		return ast.DeclVar
	default:
		return ast.DeclLet
	}
}

func (p *Parser) parseVarDeclStatement() ast.Statement {
	stmt := &ast.VarDeclStatement{Token: p.curTok, Kind: declKindFor(p.curTok.Kind)}

	for {
		if !p.expectPeek(token.IDENT) {
			return stmt
		}
		name := &ast.Identifier{Token: p.curTok, Name: p.curTok.Lexeme}
		decl := ast.VarDeclarator{Name: name}

		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			decl.Init = p.parseExpression(ASSIGNMENT)
		} else if stmt.Kind == ast.DeclConst {
			p.errors = append(p.errors, &Error{
				Kind:    ConstantWithoutInitializer,
				Message: "missing initializer in const declaration",
				Pos:     name.Token.Start,
			})
		}
		stmt.Declarations = append(stmt.Declarations, decl)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	tok := p.curTok
	fn := p.parseFunctionLiteralNamed()
	return &ast.FunctionDeclaration{Token: tok, Fn: fn}
}

// parseFunctionLiteralNamed requires a name (function declarations);
// parseFunctionLiteral (the prefix parse fn) allows an anonymous one.
func (p *Parser) parseFunctionLiteralNamed() *ast.FunctionLiteral {
	fn := &ast.FunctionLiteral{Token: p.curTok}
	if p.expectPeek(token.IDENT) {
		fn.Name = p.curTok.Lexeme
	}
	if !p.expectPeek(token.LPAREN) {
		return fn
	}
	fn.Params = p.parseParamList()
	if !p.expectPeek(token.LBRACE) {
		return fn
	}
	fn.Body = p.parseBlockStatement().(*ast.BlockStatement)
	return fn
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	tok := p.curTok
	fn := &ast.FunctionLiteral{Token: tok}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		fn.Name = p.curTok.Lexeme
	}
	if !p.expectPeek(token.LPAREN) {
		return fn
	}
	fn.Params = p.parseParamList()
	if !p.expectPeek(token.LBRACE) {
		return fn
	}
	fn.Body = p.parseBlockStatement().(*ast.BlockStatement)
	return fn
}

func (p *Parser) parseParamList() []*ast.Identifier {
	var params []*ast.Identifier
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, &ast.Identifier{Token: p.curTok, Name: p.curTok.Lexeme})
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, &ast.Identifier{Token: p.curTok, Name: p.curTok.Lexeme})
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curTok}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Then = p.parseStatement()
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Alt = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curTok}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curTok}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	} else {
		p.nextToken()
		if p.curTokenIs(token.LET) || p.curTokenIs(token.CONST) || p.curTokenIs(token.VAR) {
			stmt.Init = p.parseVarDeclStatement()
		} else {
			stmt.Init = p.parseExpressionStatement()
		}
		if !p.curTokenIs(token.SEMICOLON) {
			if !p.expectPeek(token.SEMICOLON) {
				return stmt
			}
		}
	}

	if !p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		stmt.Condition = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.SEMICOLON) {
		return stmt
	}

	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		stmt.Update = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}

	p.nextToken()
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curTok}
	if p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.RBRACE) {
		p.skipSemicolon()
		return stmt
	}
	p.nextToken()
	stmt.Expr = p.parseExpression(LOWEST)
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Statement {
	stmt := &ast.BreakStatement{Token: p.curTok}
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseContinueStatement() ast.Statement {
	stmt := &ast.ContinueStatement{Token: p.curTok}
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseBlockStatement() ast.Statement {
	block := &ast.BlockStatement{Token: p.curTok}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curTok}
	stmt.Expr = p.parseExpression(LOWEST)
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.curTok.Kind]
	if !ok {
		p.curError(fmt.Sprintf("no prefix parse function for %s found", p.curTok.Kind))
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peekTok.Kind]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curTok, Name: p.curTok.Lexeme}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	lit := &ast.NumberLiteral{Token: p.curTok}
	lexeme := strings.TrimSuffix(p.curTok.Lexeme, "n")
	val, err := parseNumericLexeme(lexeme)
	if err != nil {
		p.curError("could not parse numeric literal: " + p.curTok.Lexeme)
		return lit
	}
	lit.Value = val
	return lit
}

// parseNumericLexeme converts a lexer numeric lexeme (decimal, 0x/0b/0o
// prefixed, legacy octal, or containing '_' separators) to a float64.
func parseNumericLexeme(lexeme string) (float64, error) {
	clean := strings.ReplaceAll(lexeme, "_", "")
	if len(clean) > 1 && clean[0] == '0' {
		switch clean[1] {
		case 'x', 'X':
			v, err := strconv.ParseUint(clean[2:], 16, 64)
			return float64(v), err
		case 'b', 'B':
			v, err := strconv.ParseUint(clean[2:], 2, 64)
			return float64(v), err
		case 'o', 'O':
			v, err := strconv.ParseUint(clean[2:], 8, 64)
			return float64(v), err
		default:
			if isAllOctalDigits(clean[1:]) {
				v, err := strconv.ParseUint(clean[1:], 8, 64)
				return float64(v), err
			}
		}
	}
	return strconv.ParseFloat(clean, 64)
}

func isAllOctalDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '7' {
			return false
		}
	}
	return len(s) > 0
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curTok, Value: p.curTok.Lexeme}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curTok, Value: p.curTok.Lexeme == "true"}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curTok}
}

// parseTemplateLiteral consumes a TEMPLATE_START token and the chunk/expr
// tokens that follow until TEMPLATE_END, interleaving sub-expressions
// parsed from the ordinary token stream between TEMPLATE_EXPR_START and
// TEMPLATE_EXPR_END.
func (p *Parser) parseTemplateLiteral() ast.Expression {
	lit := &ast.TemplateLiteral{Token: p.curTok}
	lit.Parts = append(lit.Parts, p.curTok.Lexeme)

	for {
		if !p.peekTokenIs(token.TEMPLATE_EXPR_START) {
			break
		}
		p.nextToken() // consume TEMPLATE_EXPR_START
		p.nextToken() // move to first token of the expression
		expr := p.parseExpression(LOWEST)
		lit.Exprs = append(lit.Exprs, expr)
		if !p.expectPeek(token.TEMPLATE_EXPR_END) {
			return lit
		}
		if !p.peekTokenIs(token.TEMPLATE_STRING) {
			break
		}
		p.nextToken()
		lit.Parts = append(lit.Parts, p.curTok.Lexeme)
	}

	if !p.expectPeek(token.TEMPLATE_END) {
		return lit
	}
	return lit
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	expr := &ast.UnaryExpression{Token: p.curTok, Operator: p.curTok.Kind.String(), Prefix: true}
	p.nextToken()
	expr.Operand = p.parseExpression(UNARY)
	return expr
}

func (p *Parser) parsePrefixUpdateExpression() ast.Expression {
	expr := &ast.UnaryExpression{Token: p.curTok, Operator: p.curTok.Kind.String(), Prefix: true}
	p.nextToken()
	expr.Operand = p.parseExpression(UNARY)
	return expr
}

func (p *Parser) parsePostfixUpdateExpression(left ast.Expression) ast.Expression {
	return &ast.UnaryExpression{Token: p.curTok, Operator: p.curTok.Kind.String(), Operand: left, Prefix: false}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{Token: p.curTok, Left: left, Operator: p.curTok.Kind.String()}
	prec := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(prec)
	return expr
}

// parseBinaryExpressionRightAssoc handles `**`, which associates right
// to left (2 ** 3 ** 2 == 2 ** (3 ** 2)).
func (p *Parser) parseBinaryExpressionRightAssoc(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{Token: p.curTok, Left: left, Operator: p.curTok.Kind.String()}
	prec := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(prec - 1)
	return expr
}

func (p *Parser) parseConditionalExpression(cond ast.Expression) ast.Expression {
	expr := &ast.ConditionalExpression{Token: p.curTok, Condition: cond}
	p.nextToken()
	expr.Then = p.parseExpression(ASSIGNMENT)
	if !p.expectPeek(token.COLON) {
		return expr
	}
	p.nextToken()
	expr.Else = p.parseExpression(ASSIGNMENT)
	return expr
}

func (p *Parser) parseAssignmentExpression(left ast.Expression) ast.Expression {
	switch left.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.IndexExpression:
	default:
		p.errors = append(p.errors, &Error{
			Kind:    InvalidAssignmentTarget,
			Message: "invalid assignment target",
			Pos:     p.curTok.Start,
		})
	}
	expr := &ast.AssignmentExpression{Token: p.curTok, Target: left, Operator: p.curTok.Kind.String()}
	prec := p.curPrecedence()
	p.nextToken()
	expr.Value = p.parseExpression(prec - 1)
	return expr
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Token: p.curTok, Callee: callee}
	expr.Args = p.parseExpressionList(token.RPAREN)
	return expr
}

func (p *Parser) parseExpressionList(end token.Kind) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(ASSIGNMENT))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(ASSIGNMENT))
	}
	if !p.expectPeek(end) {
		return list
	}
	return list
}

func (p *Parser) parseMemberExpression(obj ast.Expression) ast.Expression {
	optional := p.curTokenIs(token.QUESTION_DOT)
	expr := &ast.MemberExpression{Token: p.curTok, Object: obj, Optional: optional}
	if !p.expectPeek(token.IDENT) {
		return expr
	}
	expr.Property = p.curTok.Lexeme
	return expr
}

func (p *Parser) parseIndexExpression(obj ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Token: p.curTok, Object: obj}
	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACK) {
		return expr
	}
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	lit := &ast.ArrayLiteral{Token: p.curTok}
	lit.Elements = p.parseExpressionList(token.RBRACK)
	return lit
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	lit := &ast.ObjectLiteral{Token: p.curTok}

	for !p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		var key ast.Expression
		switch p.curTok.Kind {
		case token.STRING_LITERAL:
			key = &ast.StringLiteral{Token: p.curTok, Value: p.curTok.Lexeme}
		default:
			key = &ast.Identifier{Token: p.curTok, Name: p.curTok.Lexeme}
		}

		if !p.expectPeek(token.COLON) {
			return lit
		}
		p.nextToken()
		value := p.parseExpression(ASSIGNMENT)
		lit.Properties = append(lit.Properties, ast.ObjectProperty{Key: key, Value: value})

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}

	if !p.expectPeek(token.RBRACE) {
		return lit
	}
	return lit
}

// parseGroupedOrArrow disambiguates `(expr)` from an arrow function
// parameter list `(a, b) => ...` by snapshotting lexer+parser state and
// attempting the arrow-function parse first.
func (p *Parser) parseGroupedOrArrow() ast.Expression {
	if arrow := p.tryParseArrowFunction(); arrow != nil {
		return arrow
	}

	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return expr
	}
	if p.peekTokenIs(token.ARROW) {
		return p.finishArrowFunction(p.curTok, []*ast.Identifier{exprToParam(expr)})
	}
	return expr
}

func exprToParam(e ast.Expression) *ast.Identifier {
	if id, ok := e.(*ast.Identifier); ok {
		return id
	}
	return &ast.Identifier{Name: "_"}
}

// tryParseArrowFunction speculatively parses `(params) =>`, restoring
// lexer and parser state and returning nil if it doesn't pan out.
func (p *Parser) tryParseArrowFunction() ast.Expression {
	lexState := p.l.SaveState()
	savedCur, savedPeek := p.curTok, p.peekTok
	savedErrLen := len(p.errors)

	tok := p.curTok
	params, ok := p.tryParseParamListOnly()
	if ok && p.peekTokenIs(token.ARROW) {
		p.nextToken()
		return p.finishArrowFunction(tok, params)
	}

	p.l.RestoreState(lexState)
	p.curTok, p.peekTok = savedCur, savedPeek
	if len(p.errors) > savedErrLen {
		p.errors = p.errors[:savedErrLen]
	}
	return nil
}

// tryParseParamListOnly parses a parenthesized, comma-separated
// identifier list (the only shape valid as arrow-function parameters)
// starting at curTok == LPAREN, leaving curTok on RPAREN on success.
func (p *Parser) tryParseParamListOnly() ([]*ast.Identifier, bool) {
	var params []*ast.Identifier
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}
	p.nextToken()
	if !p.curTokenIs(token.IDENT) {
		return nil, false
	}
	params = append(params, &ast.Identifier{Token: p.curTok, Name: p.curTok.Lexeme})
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		if !p.curTokenIs(token.IDENT) {
			return nil, false
		}
		params = append(params, &ast.Identifier{Token: p.curTok, Name: p.curTok.Lexeme})
	}
	if !p.peekTokenIs(token.RPAREN) {
		return nil, false
	}
	p.nextToken()
	return params, true
}

// parseBareArrowFunction handles the single-identifier arrow-function
// shorthand `x => expr`, reached as an infix parse when curTok is '=>'
// and the already-parsed left operand is a bare identifier.
func (p *Parser) parseBareArrowFunction(left ast.Expression) ast.Expression {
	tok := p.curTok
	id, ok := left.(*ast.Identifier)
	if !ok {
		p.curError("arrow function parameters must be identifiers")
		id = &ast.Identifier{Name: "_"}
	}
	return p.finishArrowFunction(tok, []*ast.Identifier{id})
}

func (p *Parser) finishArrowFunction(tok token.Token, params []*ast.Identifier) ast.Expression {
	fn := &ast.ArrowFunctionLiteral{Token: tok, Params: params}
	p.nextToken() // move past '=>'
	if p.curTokenIs(token.LBRACE) {
		fn.Body = p.parseBlockStatement().(*ast.BlockStatement)
	} else {
		fn.Expr = p.parseExpression(ASSIGNMENT)
	}
	return fn
}
