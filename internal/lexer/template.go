package lexer

import (
	"strings"

	"github.com/cwbudde/jsi/internal/token"
)

// startTemplate begins a template literal at the opening backtick and
// returns its first token: either the text before the first "${" (or the
// closing backtick), tagged TEMPLATE_START, with any remaining chunk
// tokens queued via emitMulti.
func (l *Lexer) startTemplate(pos token.Position) token.Token {
	l.readChar() // consume opening `
	toks := l.templateChunk()
	// Re-tag the first produced token as TEMPLATE_START rather than
	// TEMPLATE_STRING so the parser can distinguish "literal just opened"
	// from "resuming after an interpolation".
	toks[0].Kind = token.TEMPLATE_START
	return l.emitMulti(toks...)
}

// templateChunk reads raw template text (honoring \\-escapes and
// disallowing raw backtick/`${`) until it hits one of:
//
//   - a closing backtick: returns [TEMPLATE_STRING(text), TEMPLATE_END]
//   - "${":                returns [TEMPLATE_STRING(text), TEMPLATE_EXPR_START]
//     and pushes a fresh brace-depth counter onto tplStack
//   - EOF:                 reports UnterminatedTemplateLiteral
func (l *Lexer) templateChunk() []token.Token {
	startPos := l.currentPos()
	var sb strings.Builder

	for {
		if l.ch == 0 {
			l.addError(UnterminatedTemplateLiteral, "unterminated template literal", startPos)
			text := newTok(token.TEMPLATE_STRING, sb.String(), startPos, l.currentPos())
			end := newTok(token.TEMPLATE_END, "", l.currentPos(), l.currentPos())
			return []token.Token{text, end}
		}
		if l.ch == '`' {
			text := newTok(token.TEMPLATE_STRING, sb.String(), startPos, l.currentPos())
			endPos := l.currentPos()
			l.readChar()
			end := newTok(token.TEMPLATE_END, "`", endPos, l.currentPos())
			return []token.Token{text, end}
		}
		if l.ch == '$' && l.peekChar() == '{' {
			text := newTok(token.TEMPLATE_STRING, sb.String(), startPos, l.currentPos())
			exprPos := l.currentPos()
			l.readChar() // '$'
			l.readChar() // '{'
			l.tplStack = append(l.tplStack, 0)
			start := newTok(token.TEMPLATE_EXPR_START, "${", exprPos, l.currentPos())
			return []token.Token{text, start}
		}
		if l.ch == '\\' {
			l.readChar()
			l.decodeEscape(&sb, startPos)
			continue
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
}
