// Package retrieval defines the similarity-search collaborator interface and
// the Augmenter that grounds a conversational turn with retrieved context.
// Concrete index backends live in sub-packages; the in-memory cosine index is
// the default, additional backends plug in without changing calling code.
package retrieval

import (
	"context"

	"github.com/hotelkit/concierge/core"
)

// Filter restricts a search by metadata key/value equality. A nil filter
// matches everything.
type Filter map[string]any

// Index is the similarity-search collaborator. Search returns matches
// ordered by descending score; an empty slice means no match and is not an
// error. Transport failures surface as errors wrapping
// core.ErrRetrievalUnavailable.
type Index interface {
	Search(ctx context.Context, query string, k int, filter Filter) ([]core.RetrievalMatch, error)
}

// Embedder produces a vector representation of text for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
