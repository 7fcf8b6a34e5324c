package lang

import (
	"strings"
	"testing"
)

func TestSnippetMarksColumn(t *testing.T) {
	t.Parallel()

	err := ErrUnexpectedCharacter.WithPosition(Position{Line: 2, Column: 8})

	got := err.Snippet("a <- 1\narr <- !bad")

	want := "  2 | arr <- !bad\n" +
		strings.Repeat(" ", 13) + "^\n"

	if got != want {
		t.Errorf("Snippet =\n%q\nwant\n%q", got, want)
	}
}

func TestSnippetMirrorsTabs(t *testing.T) {
	t.Parallel()

	err := ErrInvalidCharacter.WithPosition(Position{Line: 1, Column: 5})

	got := err.Snippet("\tab <- 1")

	// The marker line repeats the source line's tabs so the caret lands
	// under the error column at any tab stop.
	want := "  1 | \tab <- 1\n" +
		"      \t   ^\n"

	if got != want {
		t.Errorf("Snippet =\n%q\nwant\n%q", got, want)
	}
}

func TestSnippetWithoutPosition(t *testing.T) {
	t.Parallel()

	if got := ErrTranslate.Snippet("a <- 1"); got != "" {
		t.Errorf("Snippet = %q, want empty", got)
	}
}
