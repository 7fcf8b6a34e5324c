package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	// Lexical errors.
	ErrUnterminatedComment = NewError("unterminated block comment")
	ErrInvalidCharacter    = NewError("invalid character in identifier")
	ErrUnexpectedCharacter = NewError("unexpected character")

	// Syntactic errors.
	ErrExpectedToken     = NewError("unexpected token")
	ErrUnexpectedToken   = NewError("unexpected token in value")
	ErrUnclosedConstruct = NewError("unclosed construct")

	// Evaluation errors.
	ErrUnknownConstant     = NewError("unknown constant")
	ErrStackUnderflow      = NewError("not enough operands")
	ErrTypeMismatch        = NewError("incompatible operand types")
	ErrUnexpectedExprToken = NewError("unexpected token in expression")
	ErrMalformedExpression = NewError("malformed expression")

	// Wrapper errors.
	ErrTranslate = NewError("translation failed")
	ErrReadInput = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes and
// an optional source position. It implements error, errors.Is matching
// against its originating sentinel, and slog.LogValuer.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	base  *Error      // Originating sentinel (for errors.Is)
	pos   *Position   // Source position, if known
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.base = e

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	e := &Error{err: err}
	e.base = e

	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	//
	// A known source position is appended as " at line L, column C".
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	s := strings.Join(part, ": ")

	if e.pos != nil {
		s += " at " + e.pos.String()
	}

	return s
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is this error's originating sentinel, so
// errors built with With/WithPosition/Wrap still match their sentinel
// through errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && (t == e || t == e.base)
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.pos != nil {
		attrs = append(attrs, slog.String("position", e.pos.String()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		base:  e.base,
		pos:   e.pos,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		base:  e.base,
		pos:   e.pos,
		attrs: newAttrs,
	}
}

// WithPosition attaches a source position to the error.
// This creates a new Error instance to maintain immutability.
func (e *Error) WithPosition(pos Position) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		base:  e.base,
		pos:   &pos,
		attrs: e.attrs,
	}
}

// Position returns the source position attached to the error, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// Snippet renders the offending source line with a column marker:
//
//	  3 | arr <- [1.0; 2.0
//	                      ^
//
// Returns the empty string when the error carries no position or the
// position is out of bounds for the given source.
func (e *Error) Snippet(source string) string {
	if e.pos == nil {
		return ""
	}

	lines := strings.Split(source, "\n")
	if e.pos.Line < 1 || e.pos.Line > len(lines) {
		return ""
	}

	line := lines[e.pos.Line-1]

	var buf strings.Builder

	// Print the line with line number
	buf.WriteString("  ")
	buf.WriteString(strconv.Itoa(e.pos.Line))
	buf.WriteString(" | ")
	buf.WriteString(line)
	buf.WriteRune('\n')

	// Print marker pointing to the column
	// Calculate the width needed for line number display
	lineNumWidth := len(strconv.Itoa(e.pos.Line))
	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	buf.WriteString(strings.Repeat(" ", lineNumWidth+5))

	// Pad out to the error column, mirroring any tabs in the source
	// line so the marker stays aligned at any tab stop.
	runes := []rune(line)

	for i := range e.pos.Column - 1 {
		if i < len(runes) && runes[i] == '\t' {
			buf.WriteRune('\t')
		} else {
			buf.WriteRune(' ')
		}
	}

	buf.WriteString("^\n")

	return buf.String()
}
