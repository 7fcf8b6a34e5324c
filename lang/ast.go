package lang

import (
	"strconv"
	"strings"
)

// Node is a syntax tree node produced by the parser.
type Node interface {
	// Pos returns the source position of the node's first token.
	Pos() Position

	dump(b *strings.Builder, depth int)
}

// Program is the root of the syntax tree: an ordered list of top-level
// statements.
type Program struct {
	Statements []Node
}

// NumberNode is a numeric literal. All numbers are float64.
type NumberNode struct {
	Value float64
	pos   Position
}

// NameNode is a reference to a previously declared constant.
type NameNode struct {
	Name string
	pos  Position
}

// ArrayNode is an ordered sequence of values.
type ArrayNode struct {
	Elements []Node
	pos      Position
}

// DictPair is a single key-value pair of a dictionary literal.
type DictPair struct {
	Key   string
	Value Node
	Pos   Position
}

// DictNode is a dictionary literal. Pairs preserve source order; a repeated
// key is resolved at evaluation time, not here.
type DictNode struct {
	Pairs []DictPair
	pos   Position
}

// ConstDeclNode binds a name to a value for the remainder of the program.
type ConstDeclNode struct {
	Name  string
	Value Node
	pos   Position
}

// ConstExprNode is a deferred constant expression. The tokens between the
// '.(' and ').' delimiters are captured verbatim and replayed by the
// evaluator as a postfix expression.
type ConstExprNode struct {
	Tokens []Token
	pos    Position
}

// Pos implements Node.
func (n *NumberNode) Pos() Position    { return n.pos }
func (n *NameNode) Pos() Position      { return n.pos }
func (n *ArrayNode) Pos() Position     { return n.pos }
func (n *DictNode) Pos() Position      { return n.pos }
func (n *ConstDeclNode) Pos() Position { return n.pos }
func (n *ConstExprNode) Pos() Position { return n.pos }

// FormatAST renders the syntax tree as an indented textual outline, one
// node per line. Intended for diagnostics and inspection, not round trips.
func FormatAST(prog *Program) string {
	var b strings.Builder

	b.WriteString("Program\n")

	for _, stmt := range prog.Statements {
		stmt.dump(&b, 1)
	}

	return b.String()
}

func writeIndent(b *strings.Builder, depth int) {
	for range depth {
		b.WriteString("  ")
	}
}

func (n *NumberNode) dump(b *strings.Builder, depth int) {
	writeIndent(b, depth)
	b.WriteString("Number ")
	b.WriteString(strconv.FormatFloat(n.Value, 'f', -1, 64))
	b.WriteRune('\n')
}

func (n *NameNode) dump(b *strings.Builder, depth int) {
	writeIndent(b, depth)
	b.WriteString("Name ")
	b.WriteString(n.Name)
	b.WriteRune('\n')
}

func (n *ArrayNode) dump(b *strings.Builder, depth int) {
	writeIndent(b, depth)
	b.WriteString("Array\n")

	for _, elem := range n.Elements {
		elem.dump(b, depth+1)
	}
}

func (n *DictNode) dump(b *strings.Builder, depth int) {
	writeIndent(b, depth)
	b.WriteString("Dict\n")

	for _, pair := range n.Pairs {
		writeIndent(b, depth+1)
		b.WriteString("Pair ")
		b.WriteString(pair.Key)
		b.WriteRune('\n')
		pair.Value.dump(b, depth+2)
	}
}

func (n *ConstDeclNode) dump(b *strings.Builder, depth int) {
	writeIndent(b, depth)
	b.WriteString("ConstDecl ")
	b.WriteString(n.Name)
	b.WriteRune('\n')
	n.Value.dump(b, depth+1)
}

func (n *ConstExprNode) dump(b *strings.Builder, depth int) {
	writeIndent(b, depth)
	b.WriteString("ConstExpr")

	for _, tok := range n.Tokens {
		b.WriteRune(' ')
		b.WriteString(tok.String())
	}

	b.WriteRune('\n')
}
