package lexer

import "github.com/cwbudde/jsi/internal/token"

// readNumber scans a decimal, hex (0x), binary (0b) or octal (0o/legacy
// leading-zero) numeric literal, including '_' digit separators and an
// optional 'n' BigInt suffix. Exponent parts (1e10, 1.5e-3) are validated
// and reported via InvalidExponent on malformed input (e.g. "1e" or
// "1e+").
func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.position

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		l.readRadixDigits(isHexDigit)
		return l.finishNumber(pos, start)
	}
	if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') {
		l.readChar()
		l.readChar()
		l.readRadixDigits(func(ch byte) bool { return ch == '0' || ch == '1' })
		return l.finishNumber(pos, start)
	}
	if l.ch == '0' && (l.peekChar() == 'o' || l.peekChar() == 'O') {
		l.readChar()
		l.readChar()
		l.readRadixDigits(func(ch byte) bool { return ch >= '0' && ch <= '7' })
		return l.finishNumber(pos, start)
	}

	// Legacy octal: a leading zero followed only by octal digits (no
	// '8'/'9'/'.') is treated as octal; otherwise it's an ordinary
	// decimal literal (and "08"/"09" are valid decimal, not octal).
	if l.ch == '0' && isDigit(l.peekChar()) {
		save := l.saveRaw()
		l.readChar()
		isOctal := true
		for isDigit(l.ch) {
			if l.ch == '8' || l.ch == '9' {
				isOctal = false
			}
			l.readChar()
		}
		if l.ch == '.' || l.ch == 'e' || l.ch == 'E' {
			isOctal = false
		}
		if isOctal {
			return l.finishNumber(pos, start)
		}
		l.restoreRaw(save)
	}

	l.readDecimalDigits()

	if l.ch == '.' {
		l.readChar()
		l.readDecimalDigits()
	}

	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			l.addError(InvalidExponent, "invalid exponent in numeric literal", pos)
		} else {
			l.readDecimalDigits()
		}
	}

	return l.finishNumber(pos, start)
}

func (l *Lexer) readDecimalDigits() {
	l.readRadixDigits(isDigit)
}

func (l *Lexer) readRadixDigits(accept func(byte) bool) {
	for accept(l.ch) || l.ch == '_' {
		l.readChar()
	}
}

func (l *Lexer) finishNumber(pos token.Position, start int) token.Token {
	lexeme := l.input[start:l.position]
	if l.ch == 'n' {
		l.readChar()
		return newTok(token.BIGINT_LITERAL, lexeme, pos, l.currentPos())
	}
	return newTok(token.NUMERIC_LITERAL, lexeme, pos, l.currentPos())
}
