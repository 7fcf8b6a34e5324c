package lang

import (
	"log/slog"
)

// Parser builds a syntax tree from a token stream by recursive descent.
// The cursor is a plain index into the token slice; the grammar needs at
// most two tokens of lookahead, at the statement head, to distinguish a
// declaration "name <-" from a bare name value.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a parser over the given token stream. The stream must
// be terminated by an EOF token, as produced by (*Lexer).Tokenize.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the entire token stream and returns the program tree.
// Top-level statements may be separated by semicolons. The first syntax
// error aborts the parse.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{}

	for p.current().Kind != KindEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		prog.Statements = append(prog.Statements, stmt)

		if p.current().Kind == KindSemicolon {
			p.pos++
		}
	}

	return prog, nil
}

// parseStatement parses either a declaration "name <- value" or a bare
// value. A leading name begins a declaration only when the next token is
// '<-'; otherwise the name is parsed as a value reference.
func (p *Parser) parseStatement() (Node, error) {
	if p.current().Kind == KindName && p.peek(1).Kind == KindAssign {
		name := p.current()
		p.pos += 2 // name, '<-'

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		return &ConstDeclNode{
			Name:  name.Text,
			Value: value,
			pos:   name.Pos,
		}, nil
	}

	return p.parseValue()
}

// parseValue parses a single value of any form.
func (p *Parser) parseValue() (Node, error) {
	tok := p.current()

	switch tok.Kind {
	case KindNumber:
		p.pos++

		return &NumberNode{Value: tok.Number, pos: tok.Pos}, nil

	case KindName:
		p.pos++

		return &NameNode{Name: tok.Text, pos: tok.Pos}, nil

	case KindLBracket:
		return p.parseArray()

	case KindLBrace:
		return p.parseDict()

	case KindDot:
		return p.parseConstExpr()

	default:
		return nil, ErrUnexpectedToken.
			WithPosition(tok.Pos).
			With(slog.String("token", tok.String()))
	}
}

// parseArray parses "[ value (';' value)* ';'? ]". Empty arrays and a
// trailing semicolon are both permitted.
func (p *Parser) parseArray() (Node, error) {
	open := p.current()
	p.pos++ // '['

	node := &ArrayNode{pos: open.Pos}

	for p.current().Kind != KindRBracket {
		if p.current().Kind == KindEOF {
			return nil, ErrUnclosedConstruct.
				WithPosition(open.Pos).
				With(slog.String("construct", "array"))
		}

		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		node.Elements = append(node.Elements, elem)

		if p.current().Kind != KindSemicolon {
			break
		}

		p.pos++ // ';'
	}

	if err := p.eat(KindRBracket); err != nil {
		return nil, err
	}

	return node, nil
}

// parseDict parses "{ name '=' value (';' name '=' value)* ';'? }".
// Keys must be identifiers. A repeated key is not rejected here.
func (p *Parser) parseDict() (Node, error) {
	open := p.current()
	p.pos++ // '{'

	node := &DictNode{pos: open.Pos}

	for p.current().Kind != KindRBrace {
		if p.current().Kind == KindEOF {
			return nil, ErrUnclosedConstruct.
				WithPosition(open.Pos).
				With(slog.String("construct", "dictionary"))
		}

		key := p.current()
		if err := p.eat(KindName); err != nil {
			return nil, err
		}

		if err := p.eat(KindEquals); err != nil {
			return nil, err
		}

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		node.Pairs = append(node.Pairs, DictPair{
			Key:   key.Text,
			Value: value,
			Pos:   key.Pos,
		})

		if p.current().Kind != KindSemicolon {
			break
		}

		p.pos++ // ';'
	}

	if err := p.eat(KindRBrace); err != nil {
		return nil, err
	}

	return node, nil
}

// parseConstExpr parses ".( tokens )." and captures the enclosed tokens
// verbatim for later postfix evaluation. Parentheses inside the expression
// are tracked by depth so the capture stops at the matching ')'.
func (p *Parser) parseConstExpr() (Node, error) {
	open := p.current()
	p.pos++ // '.'

	if err := p.eat(KindLParen); err != nil {
		return nil, err
	}

	node := &ConstExprNode{pos: open.Pos}

	depth := 0

	for {
		tok := p.current()

		if tok.Kind == KindEOF {
			return nil, ErrUnclosedConstruct.
				WithPosition(open.Pos).
				With(slog.String("construct", "constant expression"))
		}

		if tok.Kind == KindLParen {
			depth++
		}

		if tok.Kind == KindRParen {
			if depth == 0 {
				break
			}

			depth--
		}

		node.Tokens = append(node.Tokens, tok)
		p.pos++
	}

	p.pos++ // ')'

	if err := p.eat(KindDot); err != nil {
		return nil, err
	}

	return node, nil
}

// eat consumes the current token, which must be of the given kind.
func (p *Parser) eat(kind Kind) error {
	tok := p.current()

	if tok.Kind != kind {
		return ErrExpectedToken.
			WithPosition(tok.Pos).
			With(
				slog.String("want", kind.String()),
				slog.String("got", tok.String()),
			)
	}

	p.pos++

	return nil
}

// current returns the token at the cursor without consuming it. The EOF
// token is sticky: reading past it keeps returning it.
func (p *Parser) current() Token { return p.peek(0) }

// peek returns the token offset positions past the cursor without
// consuming anything.
func (p *Parser) peek(offset int) Token {
	pos := p.pos + offset
	if pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[pos]
}
