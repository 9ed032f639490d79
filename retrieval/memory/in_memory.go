// Package memory provides an in-process retrieval.Index backed by cosine
// similarity over embedded documents. Suitable for single-node deployments
// and tests; swap for a hosted vector store for larger corpora without
// changing calling code.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/hotelkit/concierge/core"
	"github.com/hotelkit/concierge/retrieval"
)

// Document is an embedded passage stored by the index.
type Document struct {
	ID        string
	Content   string
	Metadata  map[string]any
	Embedding []float32
}

// Index is an append-only in-memory vector index. Concurrency: protected by
// RWMutex; Add and Search may be called from multiple goroutines.
type Index struct {
	mu       sync.RWMutex
	embedder retrieval.Embedder
	docs     []Document
}

// NewIndex constructs an empty index over the given embedder.
func NewIndex(embedder retrieval.Embedder) *Index {
	return &Index{embedder: embedder}
}

// Add embeds content and stores it under the given id.
func (i *Index) Add(ctx context.Context, id, content string, metadata map[string]any) error {
	vec, err := i.embedder.Embed(ctx, content)
	if err != nil {
		return fmt.Errorf("embedding document %s: %w", id, err)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.docs = append(i.docs, Document{ID: id, Content: content, Metadata: metadata, Embedding: vec})
	return nil
}

// Len returns the number of stored documents.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.docs)
}

// Search implements retrieval.Index: embeds the query and returns the k most
// similar documents by cosine similarity, highest first. Embedder failures
// surface wrapping core.ErrRetrievalUnavailable.
func (i *Index) Search(ctx context.Context, query string, k int, filter retrieval.Filter) ([]core.RetrievalMatch, error) {
	if k < 1 {
		k = 1
	}
	queryVec, err := i.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %v", core.ErrRetrievalUnavailable, err)
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	matches := make([]core.RetrievalMatch, 0, len(i.docs))
	for _, doc := range i.docs {
		if !matchesFilter(doc.Metadata, filter) {
			continue
		}
		matches = append(matches, core.RetrievalMatch{
			Content:  doc.Content,
			Metadata: doc.Metadata,
			Score:    CosineSimilarity(queryVec, doc.Embedding),
		})
	}
	sort.SliceStable(matches, func(a, b int) bool { return matches[a].Score > matches[b].Score })
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// matchesFilter reports whether metadata satisfies every filter entry.
func matchesFilter(metadata map[string]any, filter retrieval.Filter) bool {
	for key, want := range filter {
		if metadata[key] != want {
			return false
		}
	}
	return true
}

// CosineSimilarity returns the cosine similarity between two vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, magA, magB float64
	for i := 0; i < len(a); i++ {
		vA := float64(a[i])
		vB := float64(b[i])
		dot += vA * vB
		magA += vA * vA
		magB += vB * vB
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
