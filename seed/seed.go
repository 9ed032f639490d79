// Package seed bootstraps a retrieval index from a flat JSON file of hotel
// source documents. Seeding runs once at startup, before any turn is served;
// an already populated index is left untouched.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hotelkit/concierge/internal/util"
	"github.com/hotelkit/concierge/logging"
	"github.com/hotelkit/concierge/retrieval/memory"
)

// SourceDocument is one record of the sources file. Data carries the fact
// itself; segment and subsegment categorize it and become part of the
// indexed content so they contribute to similarity.
type SourceDocument struct {
	Data       string         `json:"data"`
	Segment    string         `json:"segment"`
	Subsegment string         `json:"subsegment"`
	Metadata   map[string]any `json:"metadata"`
}

// Content renders the document as the passage stored in the index:
// "[segment][subsegment] - <data as JSON>".
func (d SourceDocument) Content() string {
	data, err := json.Marshal(d.Data)
	if err != nil {
		// A string always marshals; kept for completeness.
		data = []byte(fmt.Sprintf("%q", d.Data))
	}
	return fmt.Sprintf("[%s][%s] - %s", d.Segment, d.Subsegment, data)
}

// Options configure seeding.
type Options struct {
	Logger logging.Logger
}

// FromFile loads source documents from path and adds them to the index. It
// is idempotent per process setup: a non-empty index is assumed seeded and
// skipped. Returns the number of documents added.
func FromFile(ctx context.Context, index *memory.Index, path string, optFns ...func(o *Options)) (int, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	if index.Len() > 0 {
		opts.Logger.Debug("seed.skipped", "documents", index.Len())
		return 0, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading sources file: %w", err)
	}

	return FromJSON(ctx, index, raw, optFns...)
}

// FromJSON parses a JSON array of source documents and adds every record to
// the index. Unlike FromFile it does not check for prior content; callers
// seeding incrementally use it directly.
func FromJSON(ctx context.Context, index *memory.Index, raw []byte, optFns ...func(o *Options)) (int, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	var docs []SourceDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return 0, fmt.Errorf("parsing sources file: %w", err)
	}

	for _, doc := range docs {
		if err := index.Add(ctx, util.NewID(), doc.Content(), doc.Metadata); err != nil {
			return 0, fmt.Errorf("seeding %s/%s: %w", doc.Segment, doc.Subsegment, err)
		}
	}

	opts.Logger.Info("seed.done", "documents", len(docs))
	return len(docs), nil
}
