package syntax

import (
	"errors"
	"fmt"
)

// Diagnostic is one recorded lexical or syntax error.
type Diagnostic struct {
	Pos Pos
	Msg string
}

// String formats the diagnostic as "file:line:col: message".
func (d Diagnostic) String() string {
	return d.Pos.String() + ": " + d.Msg
}

func formatDiagnostics(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.String()
	}
	return out
}

// ErrorKind classifies a syntax error.
type ErrorKind uint8

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrExpectedToken
	ErrExpectedExpression
	ErrExpectedStatement
	ErrExpectedIdentifier
	ErrExpectedLParen
	ErrExpectedRParen
	ErrExpectedRBracket
	ErrExpectedRBrace
	ErrExpectedColon
	ErrExpectedSemicolon
	ErrExpectedArrow
	ErrExpectedAssign
	ErrExpectedNewline
	ErrInvalidAssignmentTarget
	ErrInvalidPattern
	ErrDuplicateParameter
	ErrUnexpectedEOF
	ErrMismatchedIndentation
	ErrInvalidImport
	ErrInvalidFunction
	ErrInvalidDataDecl
	ErrInvalidTemplate
	ErrInternal
)

var errorKindNames = [...]string{
	ErrUnexpectedToken:         "unexpected token",
	ErrExpectedToken:           "expected token",
	ErrExpectedExpression:      "expected expression",
	ErrExpectedStatement:       "expected statement",
	ErrExpectedIdentifier:      "expected identifier",
	ErrExpectedLParen:          "expected '('",
	ErrExpectedRParen:          "expected ')'",
	ErrExpectedRBracket:        "expected ']'",
	ErrExpectedRBrace:          "expected '}'",
	ErrExpectedColon:           "expected ':'",
	ErrExpectedSemicolon:       "expected ';'",
	ErrExpectedArrow:           "expected '->'",
	ErrExpectedAssign:          "expected '='",
	ErrExpectedNewline:         "expected newline",
	ErrInvalidAssignmentTarget: "invalid assignment target",
	ErrInvalidPattern:          "invalid pattern",
	ErrDuplicateParameter:      "duplicate parameter",
	ErrUnexpectedEOF:           "unexpected end of file",
	ErrMismatchedIndentation:   "mismatched indentation",
	ErrInvalidImport:           "invalid import",
	ErrInvalidFunction:         "invalid function declaration",
	ErrInvalidDataDecl:         "invalid data declaration",
	ErrInvalidTemplate:         "invalid template literal",
	ErrInternal:                "internal error",
}

// String returns a short description of the error kind.
func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Kind ErrorKind
	Pos  Pos
	Msg  string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// IsIncomplete reports whether err is a syntax error caused by input ending too
// early, meaning more source text could complete it.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.Kind == ErrUnexpectedEOF
}

// ParseResult holds either a parsed node or the error that prevented it.
type ParseResult[T any] struct {
	Node T
	Err  *SyntaxError
}

// IsSuccess reports whether parsing succeeded.
func (r ParseResult[T]) IsSuccess() bool {
	return r.Err == nil
}

// IsError reports whether parsing failed.
func (r ParseResult[T]) IsError() bool {
	return r.Err != nil
}

// ErrorKind returns the kind of the failure. Only meaningful when IsError.
func (r ParseResult[T]) ErrorKind() ErrorKind {
	if r.Err == nil {
		return ErrInternal
	}
	return r.Err.Kind
}

// ErrorMessage returns the failure message, or "" on success.
func (r ParseResult[T]) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Msg
}

// ErrorLocation returns the position of the failure, or the zero Pos on success.
func (r ParseResult[T]) ErrorLocation() Pos {
	if r.Err == nil {
		return Pos{}
	}
	return r.Err.Pos
}
