package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrEmptyIndex means nothing has been added to the index.
	ErrEmptyIndex = errors.New("portfolio index is empty")
	// ErrNoMatches means the search returned no usable urls.
	ErrNoMatches = errors.New("no portfolio matches")
)

// Searcher ranks entries against a query, most relevant first.
type Searcher interface {
	Query(ctx context.Context, text string, k int) ([]Hit, error)
}

// Index is an in-memory vector index. Entry vectors are computed on the first query so
// a remote embedder that is down at startup can recover later.
type Index struct {
	embedder Embedder

	mu      sync.RWMutex
	entries []Entry
	vectors [][]float32
}

// NewIndex returns an empty index; a nil embedder uses HashEmbedder.
func NewIndex(embedder Embedder) *Index {
	if embedder == nil {
		embedder = HashEmbedder{}
	}
	return &Index{embedder: embedder}
}

// Add appends entries. Vectors are built lazily.
func (i *Index) Add(entries ...Entry) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries = append(i.entries, entries...)
	i.vectors = nil
}

// Len reports the number of indexed entries.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Query returns up to k entries by cosine similarity. Equal scores keep insertion order.
func (i *Index) Query(ctx context.Context, text string, k int) ([]Hit, error) {
	entries, vectors, err := i.ensureVectors(ctx)
	if err != nil {
		return nil, err
	}
	qv, err := i.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(qv) != 1 {
		return nil, fmt.Errorf("embed query: expected 1 vector, got %d", len(qv))
	}

	hits := make([]Hit, len(entries))
	for n, entry := range entries {
		hits[n] = Hit{Entry: entry, Score: cosine(qv[0], vectors[n])}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Score > hits[b].Score })
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (i *Index) ensureVectors(ctx context.Context) ([]Entry, [][]float32, error) {
	i.mu.RLock()
	entries, vectors := i.entries, i.vectors
	i.mu.RUnlock()
	if len(entries) == 0 {
		return nil, nil, ErrEmptyIndex
	}
	if vectors != nil {
		return entries, vectors, nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.vectors != nil {
		return i.entries, i.vectors, nil
	}
	docs := make([]string, len(i.entries))
	for n, e := range i.entries {
		docs[n] = e.Document()
	}
	vecs, err := i.embedder.Embed(ctx, docs)
	if err != nil {
		return nil, nil, fmt.Errorf("embed portfolio: %w", err)
	}
	if len(vecs) != len(docs) {
		return nil, nil, fmt.Errorf("embed portfolio: expected %d vectors, got %d", len(docs), len(vecs))
	}
	i.vectors = vecs
	return i.entries, i.vectors, nil
}

var _ Searcher = (*Index)(nil)
