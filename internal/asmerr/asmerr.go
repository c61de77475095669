// Package asmerr defines the error kinds reported by both assembler passes.
package asmerr

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Use errors.Is to test an error against a kind.
var (
	ErrUnknownSymbolReference    = errors.New("unknown symbol reference")
	ErrMalformedLiteral          = errors.New("malformed literal")
	ErrMalformedDirectiveOperand = errors.New("malformed directive operand")
	ErrMalformedOperand          = errors.New("malformed operand")
	ErrUnexpectedEndOfInput      = errors.New("unexpected end of input")
	ErrIOFailure                 = errors.New("i/o failure")
)

// Error describes a failure at a specific place in the source.
type Error struct {
	Kind      error  // one of the Err* kinds
	Token     string // offending token, if any
	Line      int    // 1-based source line, 0 if unknown
	Directive string // directive being processed, if any
	Err       error  // underlying cause, if any
}

// New returns an error of the given kind for the token on the given line.
func New(kind error, token string, line int) *Error {
	return &Error{
		Kind:  kind,
		Token: token,
		Line:  line,
	}
}

// WithDirective sets the directive that was being processed.
func (e *Error) WithDirective(directive string) *Error {
	e.Directive = strings.ToUpper(directive)
	return e
}

// Wrap sets the underlying cause.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.Directive != "" {
		fmt.Fprintf(&sb, " in %s", e.Directive)
	}
	if e.Token != "" {
		fmt.Fprintf(&sb, " '%s'", e.Token)
	}
	if e.Line > 0 {
		fmt.Fprintf(&sb, " at line %d", e.Line)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %s", e.Err)
	}
	return sb.String()
}

// Unwrap returns both the kind and the cause so that errors.Is matches either.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
