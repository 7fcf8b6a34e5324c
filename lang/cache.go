package lang

import (
	"maps"
	"slices"
	"sync"

	"github.com/zeebo/xxh3"
)

// cacheEntry memoizes one translation keyed by source content hash. The
// once guard ensures concurrent requests for the same source translate it
// exactly once.
type cacheEntry struct {
	once sync.Once
	doc  *Document
	err  error
}

var translationCache sync.Map // uint64 -> *cacheEntry

// TranslateCached translates source text, memoizing results by content
// hash so repeated translations of identical input are free. Runs that
// carry options bypass the cache, since options change the outcome.
func TranslateCached(source string, opts ...Option) (*Document, error) {
	if len(opts) > 0 {
		return Translate(source, opts...)
	}

	key := xxh3.HashString(source)

	v, _ := translationCache.LoadOrStore(key, &cacheEntry{})
	entry, _ := v.(*cacheEntry)

	entry.once.Do(func() {
		entry.doc, entry.err = Translate(source)
	})

	if entry.err != nil {
		return nil, entry.err
	}

	// Callers may extend the returned document, so hand out a copy and
	// keep the cached original pristine.
	return entry.doc.clone(), nil
}

// ClearTranslationCache drops all memoized translations.
func ClearTranslationCache() {
	translationCache.Clear()
}

// clone returns a document sharing values with the receiver but with
// independent entry bookkeeping. Values are never mutated after
// evaluation, so sharing them is safe.
func (d *Document) clone() *Document {
	return &Document{
		entries: slices.Clone(d.entries),
		index:   maps.Clone(d.index),
	}
}
