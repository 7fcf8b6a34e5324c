package lang

import (
	"errors"
	"testing"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}

	return out
}

func TestLexerTokenKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{
			name:  "empty input",
			input: "",
			want:  []Kind{KindEOF},
		},
		{
			name:  "declaration",
			input: "answer <- 42",
			want:  []Kind{KindName, KindAssign, KindNumber, KindEOF},
		},
		{
			name:  "array literal",
			input: "[1; 2; 3]",
			want: []Kind{
				KindLBracket, KindNumber, KindSemicolon, KindNumber,
				KindSemicolon, KindNumber, KindRBracket, KindEOF,
			},
		},
		{
			name:  "dict literal",
			input: "{port = 8080}",
			want: []Kind{
				KindLBrace, KindName, KindEquals, KindNumber,
				KindRBrace, KindEOF,
			},
		},
		{
			name:  "constant expression",
			input: ".(a b + sort).",
			want: []Kind{
				KindDot, KindLParen, KindName, KindName, KindPlus,
				KindSort, KindRParen, KindDot, KindEOF,
			},
		},
		{
			name:  "minus operator",
			input: ".(5 3 -).",
			want: []Kind{
				KindDot, KindLParen, KindNumber, KindNumber, KindMinus,
				KindRParen, KindDot, KindEOF,
			},
		},
		{
			name:  "line comment skipped",
			input: ":: nothing here\n7",
			want:  []Kind{KindNumber, KindEOF},
		},
		{
			name:  "block comment skipped",
			input: "<# spans\nlines #> 7",
			want:  []Kind{KindNumber, KindEOF},
		},
		{
			name:  "block comment between tokens",
			input: "a <# gap #> <- 1",
			want:  []Kind{KindName, KindAssign, KindNumber, KindEOF},
		},
		{
			name:  "comment only input",
			input: ":: just a comment",
			want:  []Kind{KindEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, err := NewLexer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}

			got := kinds(tokens)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) kinds = %v, want %v",
					tt.input, got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %v, want %v",
						i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.14", 3.14},
		{"10.", 10},
		{"0.5", 0.5},
		{"100.25", 100.25},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			tokens, err := NewLexer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}

			if tokens[0].Kind != KindNumber {
				t.Fatalf("Tokenize(%q) kind = %v, want Number",
					tt.input, tokens[0].Kind)
			}

			if tokens[0].Number != tt.want {
				t.Errorf("Tokenize(%q) value = %v, want %v",
					tt.input, tokens[0].Number, tt.want)
			}
		})
	}
}

func TestLexerIdentifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		kind  Kind
		text  string
	}{
		{"x", KindName, "x"},
		{"max_retries", KindName, "max_retries"},
		{"v2", KindName, "v2"},
		{"sort", KindSort, "sort"},
		{"sorted", KindName, "sorted"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			tokens, err := NewLexer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}

			if tokens[0].Kind != tt.kind || tokens[0].Text != tt.text {
				t.Errorf("Tokenize(%q) = %v %q, want %v %q",
					tt.input, tokens[0].Kind, tokens[0].Text,
					tt.kind, tt.text)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	t.Parallel()

	tokens, err := NewLexer("a <- 1\nbb <- 2").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	want := []Position{
		{Line: 1, Column: 1}, // a
		{Line: 1, Column: 3}, // <-
		{Line: 1, Column: 6}, // 1
		{Line: 2, Column: 1}, // bb
		{Line: 2, Column: 4}, // <-
		{Line: 2, Column: 7}, // 2
		{Line: 2, Column: 8}, // EOF
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}

	for i, pos := range want {
		if tokens[i].Pos != pos {
			t.Errorf("token %d (%v): pos = %v, want %v",
				i, tokens[i], tokens[i].Pos, pos)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    *Error
		wantPos Position
	}{
		{
			name:    "uppercase first character",
			input:   "Port <- 1",
			want:    ErrInvalidCharacter,
			wantPos: Position{Line: 1, Column: 1},
		},
		{
			name:    "uppercase inside identifier",
			input:   "maxRetries <- 1",
			want:    ErrInvalidCharacter,
			wantPos: Position{Line: 1, Column: 4},
		},
		{
			name:    "unterminated block comment",
			input:   "a <- 1 <# never closed",
			want:    ErrUnterminatedComment,
			wantPos: Position{Line: 1, Column: 23},
		},
		{
			name:    "bare less-than",
			input:   "a < 1",
			want:    ErrUnexpectedCharacter,
			wantPos: Position{Line: 1, Column: 3},
		},
		{
			name:    "stray symbol",
			input:   "a <- @",
			want:    ErrUnexpectedCharacter,
			wantPos: Position{Line: 1, Column: 6},
		},
		{
			name:    "uppercase on later line",
			input:   "ok <- 1\nBad <- 2",
			want:    ErrInvalidCharacter,
			wantPos: Position{Line: 2, Column: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewLexer(tt.input).Tokenize()
			if err == nil {
				t.Fatalf("Tokenize(%q) succeeded, want error", tt.input)
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("Tokenize(%q) error = %v, want %v",
					tt.input, err, tt.want)
			}

			var le *Error
			if !errors.As(err, &le) {
				t.Fatalf("Tokenize(%q) error type = %T", tt.input, err)
			}

			pos, ok := le.Position()
			if !ok {
				t.Fatalf("Tokenize(%q) error has no position", tt.input)
			}

			if pos != tt.wantPos {
				t.Errorf("Tokenize(%q) error pos = %v, want %v",
					tt.input, pos, tt.wantPos)
			}
		})
	}
}

func TestLexerAssignBeforeBlockComment(t *testing.T) {
	t.Parallel()

	// '<#' opens a comment even though '<' alone would be rejected and
	// '<-' would be an assignment.
	tokens, err := NewLexer("a <-<#x#> 1").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	want := []Kind{KindName, KindAssign, KindNumber, KindEOF}
	got := kinds(tokens)

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}
