package lang

import (
	"errors"
	"sync"
	"testing"
)

func TestTranslateCached(t *testing.T) {
	defer ClearTranslationCache()

	const source = "a <- 1\nb <- [2; 3]"

	first, err := TranslateCached(source)
	if err != nil {
		t.Fatalf("TranslateCached error: %v", err)
	}

	second, err := TranslateCached(source)
	if err != nil {
		t.Fatalf("TranslateCached error: %v", err)
	}

	wantNumber(t, first, "a", 1)
	wantNumber(t, second, "a", 1)

	// Extending one returned document must not leak into later hits.
	second.Set("extra", NumberValue(9))

	third, err := TranslateCached(source)
	if err != nil {
		t.Fatalf("TranslateCached error: %v", err)
	}

	if _, ok := third.Get("extra"); ok {
		t.Error("cached document was mutated through a returned copy")
	}
}

func TestTranslateCachedError(t *testing.T) {
	defer ClearTranslationCache()

	const source = "x <- missing"

	for range 2 {
		_, err := TranslateCached(source)
		if !errors.Is(err, ErrUnknownConstant) {
			t.Fatalf("error = %v, want %v", err, ErrUnknownConstant)
		}
	}
}

func TestTranslateCachedBypassWithOptions(t *testing.T) {
	defer ClearTranslationCache()

	const source = "total <- .(base 1 +)."

	// Uncached because the environment changes the outcome.
	doc, err := TranslateCached(source, WithEnv(Env{"base": NumberValue(1)}))
	if err != nil {
		t.Fatalf("TranslateCached error: %v", err)
	}

	wantNumber(t, doc, "total", 2)

	doc, err = TranslateCached(source, WithEnv(Env{"base": NumberValue(10)}))
	if err != nil {
		t.Fatalf("TranslateCached error: %v", err)
	}

	wantNumber(t, doc, "total", 11)
}

func TestTranslateCachedConcurrent(t *testing.T) {
	defer ClearTranslationCache()

	const source = "v <- [3; 1; 2]\ns <- .(v sort)."

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			doc, err := TranslateCached(source)
			if err != nil {
				t.Errorf("TranslateCached error: %v", err)

				return
			}

			if doc.Len() != 2 {
				t.Errorf("Len() = %d, want 2", doc.Len())
			}
		}()
	}

	wg.Wait()
}
