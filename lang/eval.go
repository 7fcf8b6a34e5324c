package lang

import (
	"log/slog"
	"slices"
	"strconv"
)

// Env is the constant environment threaded through evaluation. Names bind
// in statement order; later declarations shadow earlier ones.
type Env map[string]Value

// Evaluator reduces a syntax tree to concrete values against a constant
// environment. The zero value is not usable; construct with NewEvaluator.
type Evaluator struct {
	env Env
}

// NewEvaluator creates an evaluator with the given initial environment.
// A nil env starts empty. The evaluator takes ownership of the map and
// mutates it as declarations are processed.
func NewEvaluator(env Env) *Evaluator {
	if env == nil {
		env = make(Env)
	}

	return &Evaluator{env: env}
}

// Env returns the evaluator's constant environment, reflecting all
// declarations processed so far.
func (e *Evaluator) Env() Env { return e.env }

// EvaluateProgram folds the program's statements left to right into an
// ordered document. A declaration binds its name in the environment and
// produces an entry under that name; a bare value produces an entry under
// a generated "unnamed_N" key without binding anything, where N is the
// number of distinct entries already present.
func (e *Evaluator) EvaluateProgram(prog *Program) (*Document, error) {
	doc := NewDocument()

	for _, stmt := range prog.Statements {
		if decl, ok := stmt.(*ConstDeclNode); ok {
			value, err := e.evaluateNode(decl.Value)
			if err != nil {
				return nil, err
			}

			e.env[decl.Name] = value
			doc.Set(decl.Name, value)

			continue
		}

		value, err := e.evaluateNode(stmt)
		if err != nil {
			return nil, err
		}

		doc.Set("unnamed_"+strconv.Itoa(doc.Len()), value)
	}

	return doc, nil
}

// evaluateNode reduces a single node to a value.
func (e *Evaluator) evaluateNode(node Node) (Value, error) {
	switch n := node.(type) {
	case *NumberNode:
		return NumberValue(n.Value), nil

	case *NameNode:
		value, ok := e.env[n.Name]
		if !ok {
			return Value{}, ErrUnknownConstant.
				WithPosition(n.Pos()).
				With(slog.String("name", n.Name))
		}

		return value, nil

	case *ArrayNode:
		elems := make([]Value, 0, len(n.Elements))

		for _, elem := range n.Elements {
			value, err := e.evaluateNode(elem)
			if err != nil {
				return Value{}, err
			}

			elems = append(elems, value)
		}

		return SequenceValue(elems...), nil

	case *DictNode:
		return e.evaluateDict(n)

	case *ConstExprNode:
		return e.evaluateExpression(n)

	default:
		// Unreachable with trees built by the parser.
		return Value{}, ErrMalformedExpression.WithPosition(node.Pos())
	}
}

// evaluateDict reduces a dictionary literal. A repeated key keeps the
// position of its first occurrence and the value of its last.
func (e *Evaluator) evaluateDict(node *DictNode) (Value, error) {
	entries := make([]MapEntry, 0, len(node.Pairs))
	index := make(map[string]int, len(node.Pairs))

	for _, pair := range node.Pairs {
		value, err := e.evaluateNode(pair.Value)
		if err != nil {
			return Value{}, err
		}

		if i, ok := index[pair.Key]; ok {
			entries[i].Value = value

			continue
		}

		index[pair.Key] = len(entries)
		entries = append(entries, MapEntry{Key: pair.Key, Value: value})
	}

	return MappingValue(entries...), nil
}

// evaluateExpression runs the captured token run of a constant expression
// through a postfix stack machine. Exactly one value must remain on the
// stack when the run is exhausted.
func (e *Evaluator) evaluateExpression(node *ConstExprNode) (Value, error) {
	stack := make([]Value, 0, len(node.Tokens))

	pop := func() Value {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		return top
	}

	for i := 0; i < len(node.Tokens); i++ {
		tok := node.Tokens[i]

		switch tok.Kind {
		case KindNumber:
			stack = append(stack, NumberValue(tok.Number))

		case KindName:
			value, ok := e.env[tok.Text]
			if !ok {
				return Value{}, ErrUnknownConstant.
					WithPosition(tok.Pos).
					With(slog.String("name", tok.Text))
			}

			stack = append(stack, value)

		case KindSort:
			if len(stack) < 1 {
				return Value{}, ErrStackUnderflow.
					WithPosition(tok.Pos).
					With(slog.String("operator", "sort"))
			}

			sorted, err := sortSequence(pop(), tok)
			if err != nil {
				return Value{}, err
			}

			stack = append(stack, sorted)

			// 'sort' may be written in call form: consume an empty
			// '(' ')' pair immediately following the keyword.
			if i+2 < len(node.Tokens) &&
				node.Tokens[i+1].Kind == KindLParen &&
				node.Tokens[i+2].Kind == KindRParen {
				i += 2
			}

		case KindPlus:
			if len(stack) < 2 {
				return Value{}, ErrStackUnderflow.
					WithPosition(tok.Pos).
					With(slog.String("operator", "+"))
			}

			b, a := pop(), pop()

			sum, err := addValues(a, b, tok)
			if err != nil {
				return Value{}, err
			}

			stack = append(stack, sum)

		case KindMinus:
			if len(stack) < 2 {
				return Value{}, ErrStackUnderflow.
					WithPosition(tok.Pos).
					With(slog.String("operator", "-"))
			}

			b, a := pop(), pop()

			if a.Kind != KindNumberValue || b.Kind != KindNumberValue {
				return Value{}, ErrTypeMismatch.
					WithPosition(tok.Pos).
					With(
						slog.String("operator", "-"),
						slog.String("left", a.Kind.String()),
						slog.String("right", b.Kind.String()),
					)
			}

			stack = append(stack, NumberValue(a.Number-b.Number))

		default:
			return Value{}, ErrUnexpectedExprToken.
				WithPosition(tok.Pos).
				With(slog.String("token", tok.String()))
		}
	}

	if len(stack) != 1 {
		return Value{}, ErrMalformedExpression.
			WithPosition(node.Pos()).
			With(slog.Int("remaining", len(stack)))
	}

	return stack[0], nil
}

// addValues implements '+': addition for two numbers, concatenation for
// two sequences (left operand first). Any other combination is an error.
func addValues(a, b Value, tok Token) (Value, error) {
	switch {
	case a.Kind == KindNumberValue && b.Kind == KindNumberValue:
		return NumberValue(a.Number + b.Number), nil

	case a.Kind == KindSequenceValue && b.Kind == KindSequenceValue:
		joined := make([]Value, 0, len(a.Sequence)+len(b.Sequence))
		joined = append(joined, a.Sequence...)
		joined = append(joined, b.Sequence...)

		return SequenceValue(joined...), nil

	default:
		return Value{}, ErrTypeMismatch.
			WithPosition(tok.Pos).
			With(
				slog.String("operator", "+"),
				slog.String("left", a.Kind.String()),
				slog.String("right", b.Kind.String()),
			)
	}
}

// sortSequence implements 'sort': the operand must be a sequence of
// numbers, and the result is an ascending copy. The operand is left
// unmodified so values shared through the environment stay stable.
func sortSequence(operand Value, tok Token) (Value, error) {
	if operand.Kind != KindSequenceValue {
		return Value{}, ErrTypeMismatch.
			WithPosition(tok.Pos).
			With(
				slog.String("operator", "sort"),
				slog.String("operand", operand.Kind.String()),
			)
	}

	numbers := make([]float64, len(operand.Sequence))

	for i, elem := range operand.Sequence {
		if elem.Kind != KindNumberValue {
			return Value{}, ErrTypeMismatch.
				WithPosition(tok.Pos).
				With(
					slog.String("operator", "sort"),
					slog.String("element", elem.Kind.String()),
				)
		}

		numbers[i] = elem.Number
	}

	slices.Sort(numbers)

	sorted := make([]Value, len(numbers))
	for i, n := range numbers {
		sorted[i] = NumberValue(n)
	}

	return SequenceValue(sorted...), nil
}
