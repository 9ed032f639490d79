package retrieval

import (
	"context"
	"fmt"

	"github.com/hotelkit/concierge/core"
	"github.com/hotelkit/concierge/logging"
)

// groundingPrefix introduces retrieved context so the model conditions its
// answer on it before reading the question.
const groundingPrefix = "Answer the next question using the following information: "

// AugmenterOptions configure an Augmenter.
type AugmenterOptions struct {
	// K is the number of matches requested from the index. The augmenter
	// injects only the top match; K exists so callers can widen the query
	// when the backend benefits from it.
	K int
	// Logger receives structured retrieval events.
	Logger logging.Logger
}

// Augmenter fetches grounding context for a turn and injects it into the
// conversation as a synthetic assistant message placed immediately before the
// user's question. It issues exactly one similarity query per turn and does
// not rank beyond what the index already orders. Metadata filtering is a
// deliberate extension point left unused in this version.
type Augmenter struct {
	index  Index
	k      int
	logger logging.Logger
}

// NewAugmenter constructs an Augmenter over the given index.
func NewAugmenter(index Index, optFns ...func(o *AugmenterOptions)) *Augmenter {
	opts := AugmenterOptions{K: 1, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.K < 1 {
		opts.K = 1
	}
	return &Augmenter{index: index, k: opts.K, logger: opts.Logger}
}

// Augment queries the index for the user's text and, on a hit, appends the
// grounding message to conv. It returns the injected match, or nil when the
// index has nothing relevant (not an error). Index failures are returned
// wrapping core.ErrRetrievalUnavailable for the caller to downgrade.
func (a *Augmenter) Augment(ctx context.Context, conv *core.Conversation, query string) (*core.RetrievalMatch, error) {
	matches, err := a.index.Search(ctx, query, a.k, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRetrievalUnavailable, err)
	}
	if len(matches) == 0 {
		a.logger.Debug("retrieval.miss", "query_len", len(query))
		return nil, nil
	}

	top := matches[0]
	if err := conv.Append(GroundingMessage(top)); err != nil {
		return nil, err
	}
	a.logger.Debug("retrieval.hit", "score", top.Score)
	return &top, nil
}

// GroundingMessage builds the synthetic assistant message carrying a match.
func GroundingMessage(match core.RetrievalMatch) core.Message {
	return core.NewAssistantMessage(groundingPrefix + match.Content)
}
