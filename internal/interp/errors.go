package interp

import (
	"fmt"

	"github.com/cwbudde/jsi/internal/token"
)

// ErrorKind enumerates the flat set of runtime error categories, no
// hierarchy: a failure is tagged with exactly one of these regardless of
// which expression or statement raised it.
type ErrorKind int

const (
	UndefinedVariable ErrorKind = iota
	NotCallable
	NotAnObject
	NotAnArray
	IndexOutOfBounds
	TooManyArguments
	NotAString
	TypeError
	InvalidArgument
	NotImplemented
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "UndefinedVariable"
	case NotCallable:
		return "NotCallable"
	case NotAnObject:
		return "NotAnObject"
	case NotAnArray:
		return "NotAnArray"
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	case TooManyArguments:
		return "TooManyArguments"
	case NotAString:
		return "NotAString"
	case TypeError:
		return "TypeError"
	case InvalidArgument:
		return "InvalidArgument"
	case NotImplemented:
		return "NotImplemented"
	}
	return "Error"
}

// RuntimeError is raised by the evaluator for any failure that, in full
// JavaScript, would throw. This subset has no try/catch, so every
// RuntimeError aborts evaluation of the whole program.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Pos     token.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s (at %d:%d)", e.Kind, e.Message, e.Pos.Line, e.Pos.Column)
}

func newError(kind ErrorKind, pos token.Position, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func newTypeError(pos token.Position, format string, args ...interface{}) *RuntimeError {
	return newError(TypeError, pos, format, args...)
}

func newUndefinedVariableError(pos token.Position, format string, args ...interface{}) *RuntimeError {
	return newError(UndefinedVariable, pos, format, args...)
}

func newNotCallableError(pos token.Position, format string, args ...interface{}) *RuntimeError {
	return newError(NotCallable, pos, format, args...)
}

func newNotAnObjectError(pos token.Position, format string, args ...interface{}) *RuntimeError {
	return newError(NotAnObject, pos, format, args...)
}

func newNotAStringError(pos token.Position, format string, args ...interface{}) *RuntimeError {
	return newError(NotAString, pos, format, args...)
}

func newTooManyArgumentsError(pos token.Position, format string, args ...interface{}) *RuntimeError {
	return newError(TooManyArguments, pos, format, args...)
}
