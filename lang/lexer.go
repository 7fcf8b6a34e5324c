package lang

import (
	"log/slog"
	"strconv"
	"unicode"
)

// Lexer performs lexical analysis of configuration language source text.
// Each translation run constructs its own Lexer, so concurrent runs over
// different inputs need no synchronization.
type Lexer struct {
	input []rune
	pos   int
	line  int
	col   int
}

// NewLexer creates a lexer for the given source text.
func NewLexer(source string) *Lexer {
	return &Lexer{
		input: []rune(source),
		line:  1,
		col:   1,
	}
}

// Tokenize scans the entire source and returns the ordered token stream,
// terminated by an explicit EOF token. The first lexical error aborts the
// scan.
func (l *Lexer) Tokenize() ([]Token, error) {
	tokens := make([]Token, 0, len(l.input)/4+1)

	for {
		l.skipWhitespace()

		if l.eof() {
			break
		}

		ch := l.peek()

		// Comments
		if ch == ':' && l.peekAt(1) == ':' {
			l.skipLineComment()

			continue
		}

		if ch == '<' && l.peekAt(1) == '#' {
			err := l.skipBlockComment()
			if err != nil {
				return nil, err
			}

			continue
		}

		// Numbers
		if isDigit(ch) {
			tokens = append(tokens, l.scanNumber())

			continue
		}

		// Names (and the 'sort' keyword)
		if unicode.IsLower(ch) {
			tok, err := l.scanName()
			if err != nil {
				return nil, err
			}

			tokens = append(tokens, tok)

			continue
		}

		// Uppercase letters are rejected everywhere, including as the
		// first character of a would-be identifier.
		if unicode.IsUpper(ch) {
			return nil, ErrInvalidCharacter.
				WithPosition(l.position()).
				With(slog.String("char", string(ch)))
		}

		tok, err := l.scanPunct()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
	}

	return append(tokens, Token{Kind: KindEOF, Pos: l.position()}), nil
}

// scanNumber scans a numeric literal: digits, optionally followed by a dot
// and zero or more further digits. A trailing dot is valid ("10." == 10.0).
func (l *Lexer) scanNumber() Token {
	pos := l.position()
	start := l.pos

	for !l.eof() && isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' {
		l.advance()

		for !l.eof() && isDigit(l.peek()) {
			l.advance()
		}
	}

	text := string(l.input[start:l.pos])

	// The scan above admits only digits and at most one dot, so this
	// cannot fail.
	value, _ := strconv.ParseFloat(text, 64)

	return Token{Kind: KindNumber, Text: text, Number: value, Pos: pos}
}

// scanName scans an identifier: a lowercase letter followed by letters,
// digits, or underscores. An uppercase letter anywhere in the identifier
// is an error.
func (l *Lexer) scanName() (Token, error) {
	pos := l.position()
	start := l.pos

	l.advance()

	for !l.eof() {
		ch := l.peek()
		if !unicode.IsLetter(ch) && !isDigit(ch) && ch != '_' {
			break
		}

		if unicode.IsUpper(ch) {
			return Token{}, ErrInvalidCharacter.
				WithPosition(l.position()).
				With(slog.String("char", string(ch)))
		}

		l.advance()
	}

	text := string(l.input[start:l.pos])

	if text == "sort" {
		return Token{Kind: KindSort, Text: text, Pos: pos}, nil
	}

	return Token{Kind: KindName, Text: text, Pos: pos}, nil
}

// scanPunct scans single-character punctuation and the two-character
// assignment marker '<-'. Block comment openers '<#' are handled before
// this is reached.
func (l *Lexer) scanPunct() (Token, error) {
	pos := l.position()
	ch := l.peek()

	var kind Kind

	switch ch {
	case '[':
		kind = KindLBracket
	case ']':
		kind = KindRBracket
	case '{':
		kind = KindLBrace
	case '}':
		kind = KindRBrace
	case '(':
		kind = KindLParen
	case ')':
		kind = KindRParen
	case ';':
		kind = KindSemicolon
	case '=':
		kind = KindEquals
	case '.':
		kind = KindDot
	case '+':
		kind = KindPlus
	case '-':
		kind = KindMinus
	case '<':
		if l.peekAt(1) == '-' {
			l.advance()
			l.advance()

			return Token{Kind: KindAssign, Text: "<-", Pos: pos}, nil
		}

		return Token{}, ErrUnexpectedCharacter.
			WithPosition(pos).
			With(slog.String("char", string(ch)))
	default:
		return Token{}, ErrUnexpectedCharacter.
			WithPosition(pos).
			With(slog.String("char", string(ch)))
	}

	l.advance()

	return Token{Kind: kind, Text: string(ch), Pos: pos}, nil
}

// skipWhitespace skips spaces, tabs, carriage returns, and newlines.
func (l *Lexer) skipWhitespace() {
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// skipLineComment discards '::' through end of line (exclusive).
func (l *Lexer) skipLineComment() {
	l.advance() // ':'
	l.advance() // ':'

	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment discards '<#' through the first '#>'. Nested '<#' has
// no special meaning. Reaching end of input before the closing marker is
// an error at the position where scanning stopped.
func (l *Lexer) skipBlockComment() error {
	l.advance() // '<'
	l.advance() // '#'

	for {
		if l.eof() {
			return ErrUnterminatedComment.WithPosition(l.position())
		}

		if l.peek() == '#' && l.peekAt(1) == '>' {
			l.advance() // '#'
			l.advance() // '>'

			return nil
		}

		l.advance()
	}
}

// Helper methods

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(offset int) rune {
	pos := l.pos + offset
	if pos >= len(l.input) {
		return 0
	}

	return l.input[pos]
}

func (l *Lexer) advance() {
	if l.eof() {
		return
	}

	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	l.pos++
}

func (l *Lexer) position() Position {
	return Position{Line: l.line, Column: l.col}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
