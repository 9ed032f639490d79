package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hotelkit/concierge/retrieval/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constEmbedder struct{}

func (constEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

const sampleSources = `[
	{"data": "Checkout is at 11am.", "segment": "policies", "subsegment": "checkout", "metadata": {"hotelName": "Grand Plaza"}},
	{"data": "The pool is open 8am-8pm daily.", "segment": "amenities", "subsegment": "pool", "metadata": {"hotelName": "Grand Plaza"}}
]`

func writeSources(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSourceDocumentContent(t *testing.T) {
	doc := SourceDocument{Data: "Checkout is at 11am.", Segment: "policies", Subsegment: "checkout"}
	assert.Equal(t, `[policies][checkout] - "Checkout is at 11am."`, doc.Content())
}

func TestFromFile(t *testing.T) {
	idx := memory.NewIndex(constEmbedder{})

	n, err := FromFile(context.Background(), idx, writeSources(t, sampleSources))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, idx.Len())

	matches, err := idx.Search(context.Background(), "pool hours", 2, nil)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Contains(t, matches[0].Content, "[")
	assert.Equal(t, "Grand Plaza", matches[0].Metadata["hotelName"])
}

func TestFromFileSkipsPopulatedIndex(t *testing.T) {
	idx := memory.NewIndex(constEmbedder{})
	require.NoError(t, idx.Add(context.Background(), "pre", "existing passage", nil))

	n, err := FromFile(context.Background(), idx, writeSources(t, sampleSources))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, idx.Len())
}

func TestFromFileMissingFile(t *testing.T) {
	idx := memory.NewIndex(constEmbedder{})
	_, err := FromFile(context.Background(), idx, filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestFromJSONMalformed(t *testing.T) {
	idx := memory.NewIndex(constEmbedder{})
	_, err := FromJSON(context.Background(), idx, []byte(`{"not": "an array"}`))
	assert.Error(t, err)
}
