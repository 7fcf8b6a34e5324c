package lang

import (
	"errors"
	"testing"
)

func mustTranslate(t *testing.T, input string) *Document {
	t.Helper()

	doc, err := Translate(input)
	if err != nil {
		t.Fatalf("Translate(%q) error: %v", input, err)
	}

	return doc
}

func wantNumber(t *testing.T, doc *Document, key string, want float64) {
	t.Helper()

	value, ok := doc.Get(key)
	if !ok {
		t.Fatalf("document has no entry %q", key)
	}

	if value.Kind != KindNumberValue || value.Number != want {
		t.Errorf("%s = %v, want %v", key, value, want)
	}
}

func wantSequence(t *testing.T, doc *Document, key string, want []float64) {
	t.Helper()

	value, ok := doc.Get(key)
	if !ok {
		t.Fatalf("document has no entry %q", key)
	}

	if value.Kind != KindSequenceValue {
		t.Fatalf("%s kind = %v, want sequence", key, value.Kind)
	}

	if len(value.Sequence) != len(want) {
		t.Fatalf("%s = %v, want %v", key, value, want)
	}

	for i, n := range want {
		elem := value.Sequence[i]
		if elem.Kind != KindNumberValue || elem.Number != n {
			t.Errorf("%s[%d] = %v, want %v", key, i, elem, n)
		}
	}
}

func TestEvaluateDeclarations(t *testing.T) {
	t.Parallel()

	doc := mustTranslate(t, "port <- 8080\ntimeout <- 30.5")

	wantNumber(t, doc, "port", 8080)
	wantNumber(t, doc, "timeout", 30.5)
}

func TestEvaluateNameReference(t *testing.T) {
	t.Parallel()

	doc := mustTranslate(t, "a <- 7; b <- a")

	wantNumber(t, doc, "b", 7)
}

func TestEvaluatePostfixArithmetic(t *testing.T) {
	t.Parallel()

	doc := mustTranslate(t,
		"a<-10.0; b<-5.0; c<-3.0; result<-.(a b + c -).;")

	wantNumber(t, doc, "result", 12)
}

func TestEvaluateSort(t *testing.T) {
	t.Parallel()

	doc := mustTranslate(t,
		"raw <- [3; 1; 2]\nordered <- .(raw sort).")

	wantSequence(t, doc, "ordered", []float64{1, 2, 3})

	// The source sequence is left untouched.
	wantSequence(t, doc, "raw", []float64{3, 1, 2})
}

func TestEvaluateSortCallForm(t *testing.T) {
	t.Parallel()

	doc := mustTranslate(t,
		"arr <- [1.0; 2.0; 3.0]; r <- .(arr sort()).;")

	wantSequence(t, doc, "r", []float64{1, 2, 3})
}

func TestEvaluateSortCallFormUnsorted(t *testing.T) {
	t.Parallel()

	doc := mustTranslate(t,
		"raw <- [3; 1; 2]\nordered <- .(raw sort()).")

	wantSequence(t, doc, "ordered", []float64{1, 2, 3})
}

func TestEvaluateSortIdempotent(t *testing.T) {
	t.Parallel()

	doc := mustTranslate(t,
		"v <- [2; 1]\ntwice <- .(v sort sort).")

	wantSequence(t, doc, "twice", []float64{1, 2})
}

func TestEvaluateConcatenation(t *testing.T) {
	t.Parallel()

	doc := mustTranslate(t,
		"a <- [1; 2]\nb <- [3]\njoined <- .(a b +).")

	wantSequence(t, doc, "joined", []float64{1, 2, 3})
}

func TestEvaluateUnnamedValues(t *testing.T) {
	t.Parallel()

	doc := mustTranslate(t, "42\na <- 1\n[1; 2]")

	wantNumber(t, doc, "unnamed_0", 42)
	wantNumber(t, doc, "a", 1)
	wantSequence(t, doc, "unnamed_2", []float64{1, 2})
}

func TestEvaluateUnnamedDoesNotBind(t *testing.T) {
	t.Parallel()

	_, err := Translate("42\nx <- unnamed_0")
	if !errors.Is(err, ErrUnknownConstant) {
		t.Fatalf("error = %v, want %v", err, ErrUnknownConstant)
	}
}

func TestEvaluateRedefinition(t *testing.T) {
	t.Parallel()

	doc := mustTranslate(t, "a <- 1\nb <- a\na <- 2")

	// Last value wins, first position is kept.
	wantNumber(t, doc, "a", 2)

	// References made before the redefinition keep the old value.
	wantNumber(t, doc, "b", 1)

	entries := doc.Entries()
	if len(entries) != 2 || entries[0].Key != "a" || entries[1].Key != "b" {
		t.Errorf("entry order = %v", entries)
	}
}

func TestEvaluateDictDuplicateKeys(t *testing.T) {
	t.Parallel()

	doc := mustTranslate(t, "d <- {k = 1; x = 2; k = 3}")

	value, ok := doc.Get("d")
	if !ok || value.Kind != KindMappingValue {
		t.Fatalf("d = %v, want mapping", value)
	}

	if len(value.Entries) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(value.Entries), value)
	}

	if value.Entries[0].Key != "k" || value.Entries[0].Value.Number != 3 {
		t.Errorf("entry 0 = %v, want k = 3", value.Entries[0])
	}

	if value.Entries[1].Key != "x" || value.Entries[1].Value.Number != 2 {
		t.Errorf("entry 1 = %v, want x = 2", value.Entries[1])
	}
}

func TestEvaluateNestedStructures(t *testing.T) {
	t.Parallel()

	doc := mustTranslate(t,
		"cfg <- {server = {port = 80}; limits = [10; 20]}")

	cfg, ok := doc.Get("cfg")
	if !ok || cfg.Kind != KindMappingValue {
		t.Fatalf("cfg = %v, want mapping", cfg)
	}

	server := cfg.Entries[0].Value
	if server.Kind != KindMappingValue ||
		server.Entries[0].Key != "port" ||
		server.Entries[0].Value.Number != 80 {
		t.Errorf("server = %v, want {port = 80}", server)
	}

	limits := cfg.Entries[1].Value
	if limits.Kind != KindSequenceValue || len(limits.Sequence) != 2 {
		t.Errorf("limits = %v, want [10; 20]", limits)
	}
}

func TestEvaluateSeededEnv(t *testing.T) {
	t.Parallel()

	doc, err := Translate("total <- .(base 5 +).",
		WithEnv(Env{"base": NumberValue(10)}))
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}

	wantNumber(t, doc, "total", 15)
}

func TestEvaluateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  *Error
	}{
		{"unknown constant", "x <- missing", ErrUnknownConstant},
		{"forward reference", "x <- y\ny <- 1", ErrUnknownConstant},
		{"unknown in expression", "x <- .(missing 1 +).", ErrUnknownConstant},
		{"plus underflow", "x <- .(1 +).", ErrStackUnderflow},
		{"minus underflow", "x <- .(-).", ErrStackUnderflow},
		{"sort underflow", "x <- .(sort).", ErrStackUnderflow},
		{"sort of number", "x <- .(1 sort).", ErrTypeMismatch},
		{"sort of mixed sequence", "d <- {k = 1}\ns <- [d]\nx <- .(s sort).", ErrTypeMismatch},
		{"sort of nested sequence", "s <- [[1]; [2]]\nx <- .(s sort).", ErrTypeMismatch},
		{"plus number and sequence", "s <- [1]\nx <- .(s 1 +).", ErrTypeMismatch},
		{"minus sequences", "s <- [1]\nx <- .(s s -).", ErrTypeMismatch},
		{"paren inside expression", "x <- .((1)).", ErrUnexpectedExprToken},
		{"sort call with operand", "s <- [1]\nx <- .(s sort(1)).", ErrUnexpectedExprToken},
		{"semicolon inside expression", "x <- .(1; 2).", ErrUnexpectedExprToken},
		{"empty expression", "x <- .().", ErrMalformedExpression},
		{"leftover operands", "x <- .(1 2).", ErrMalformedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Translate(tt.input)
			if err == nil {
				t.Fatalf("Translate(%q) succeeded, want error", tt.input)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("Translate(%q) error = %v, want %v",
					tt.input, err, tt.want)
			}
		})
	}
}
