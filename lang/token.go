package lang

import (
	"strconv"
)

// Position locates a token or error in the source text.
// Line and Column are both 1-based.
type Position struct {
	Line   int
	Column int
}

// String returns a human-readable "line L, column C" representation.
func (p Position) String() string {
	return "line " + strconv.Itoa(p.Line) + ", column " + strconv.Itoa(p.Column)
}

// Kind identifies the lexical class of a token.
type Kind int

const (
	// KindNumber is a numeric literal. Tokens of this kind carry the
	// parsed floating-point value in Token.Number.
	KindNumber Kind = iota

	// KindName is an identifier. Tokens of this kind carry the literal
	// text in Token.Text.
	KindName

	// KindSort is the distinguished 'sort' keyword, meaningful only
	// inside constant expressions.
	KindSort

	// KindLBracket is '['.
	KindLBracket

	// KindRBracket is ']'.
	KindRBracket

	// KindLBrace is '{'.
	KindLBrace

	// KindRBrace is '}'.
	KindRBrace

	// KindLParen is '('.
	KindLParen

	// KindRParen is ')'.
	KindRParen

	// KindSemicolon is ';'.
	KindSemicolon

	// KindEquals is '='.
	KindEquals

	// KindAssign is the two-character assignment marker '<-'.
	KindAssign

	// KindDot is '.'.
	KindDot

	// KindPlus is '+'.
	KindPlus

	// KindMinus is '-'.
	KindMinus

	// KindEOF marks the end of the token stream.
	KindEOF
)

// String returns a string representation of the token kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindName:
		return "Name"
	case KindSort:
		return "Sort"
	case KindLBracket:
		return "'['"
	case KindRBracket:
		return "']'"
	case KindLBrace:
		return "'{'"
	case KindRBrace:
		return "'}'"
	case KindLParen:
		return "'('"
	case KindRParen:
		return "')'"
	case KindSemicolon:
		return "';'"
	case KindEquals:
		return "'='"
	case KindAssign:
		return "'<-'"
	case KindDot:
		return "'.'"
	case KindPlus:
		return "'+'"
	case KindMinus:
		return "'-'"
	case KindEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Token is an atomic lexical unit. Tokens are immutable once produced:
// created by the lexer, consumed in order by the parser, and (for constant
// expressions) replayed by the evaluator.
type Token struct {
	Kind   Kind
	Text   string  // literal text for Name, Sort
	Number float64 // parsed value for Number
	Pos    Position
}

// String returns a compact representation used in error attributes.
func (t Token) String() string {
	switch t.Kind {
	case KindNumber:
		return strconv.FormatFloat(t.Number, 'f', -1, 64)
	case KindName, KindSort:
		return t.Text
	default:
		return t.Kind.String()
	}
}
