package parser

import (
	"fmt"

	"github.com/cwbudde/jsi/internal/token"
)

// ErrorKind enumerates the parser-level error categories.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	ExpectedToken
	ConstantWithoutInitializer
	InvalidAssignmentTarget
	UnexpectedEOF
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case ExpectedToken:
		return "ExpectedToken"
	case ConstantWithoutInitializer:
		return "ConstantWithoutInitializer"
	case InvalidAssignmentTarget:
		return "InvalidAssignmentTarget"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	}
	return "Unknown"
}

// Error is a single parse failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}
