// Package lang implements the educational configuration language pipeline:
// a lexer producing a position-tracked token stream, a recursive descent
// parser building an AST, and an evaluator reducing the AST to a document
// of resolved values ready for YAML or JSON rendering.
//
// # Grammar
//
// Informal EBNF:
//
//	Program    → Statement* EOF
//	Statement  → identifier '<-' Value | Value
//	Value      → number | identifier | Array | Dict | ConstExpr
//	Array      → '[' (Value (';' Value)* ';'?)? ']'
//	Dict       → '{' (Pair (';' Pair)* ';'?)? '}'
//	Pair       → identifier '=' Value
//	ConstExpr  → '.' '(' <balanced token run> ')' '.'
//
// Identifiers start with a lowercase letter and continue with letters,
// digits, or underscores; an uppercase letter anywhere is a lexical error.
// Line comments start with '::' and block comments are delimited by
// '<#' and '#>'.
//
// # Constant expressions
//
// The token run inside '.( ... ).' is captured verbatim by the parser and
// evaluated later as a postfix expression against an operand stack:
// numbers and constant references push values, '+' adds two numbers or
// concatenates two sequences, '-' subtracts two numbers, and 'sort'
// (also written in call form, 'sort()') replaces the sequence on top of
// the stack with an ascending copy.
// Exactly one value must remain when the run ends.
//
// # Evaluation
//
// Statements are folded left to right over a constant environment.
// A declaration binds its name for subsequent references and becomes a
// document entry; a bare value becomes an "unnamed_N" entry without
// binding. References resolve to the most recent declaration; forward
// references are errors.
package lang
