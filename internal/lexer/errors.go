package lexer

import "github.com/cwbudde/jsi/internal/token"

// ErrorKind enumerates the flat set of lexer error kinds.
type ErrorKind int

const (
	NotFound ErrorKind = iota
	UnterminatedStringLiteral
	InvalidExponent
	UnexpectedCharacter
	UnterminatedTemplateLiteral
	InvalidEscapeSequence
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case UnterminatedStringLiteral:
		return "UnterminatedStringLiteral"
	case InvalidExponent:
		return "InvalidExponent"
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case UnterminatedTemplateLiteral:
		return "UnterminatedTemplateLiteral"
	case InvalidEscapeSequence:
		return "InvalidEscapeSequence"
	}
	return "Unknown"
}

// Error represents a single error encountered while lexing or decoding a
// token's value (numeric/escape parsing).
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return e.Message
}
