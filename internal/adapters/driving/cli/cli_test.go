package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feynlab/contextcore/internal/adapters/driven/storage/memory"
	"github.com/feynlab/contextcore/internal/core/domain"
)

// executeCommand runs the root command with the given args and captures
// its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		queryTopK = 0
		queryJSON = false
		ingestTopic = ""
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

type fakeRetriever struct {
	results    []domain.SimilarityResult
	err        error
	gotSession string
	gotQuery   string
	gotK       int
}

func (f *fakeRetriever) Retrieve(_ context.Context, sessionID, query string, k int) ([]domain.SimilarityResult, error) {
	f.gotSession = sessionID
	f.gotQuery = query
	f.gotK = k
	return f.results, f.err
}

func TestQueryCommand(t *testing.T) {
	fake := &fakeRetriever{results: []domain.SimilarityResult{
		{Text: "goroutines are multiplexed onto threads", Similarity: 0.91, Index: 2},
		{Text: "channels synchronise goroutines", Similarity: 0.84, Index: 0},
	}}
	SetRetriever(fake)

	out, err := executeCommand(t, "query", "session-1", "how do goroutines run?")

	require.NoError(t, err)
	assert.Equal(t, "session-1", fake.gotSession)
	assert.Equal(t, "how do goroutines run?", fake.gotQuery)
	assert.Zero(t, fake.gotK, "no flag means service default")
	assert.Contains(t, out, "chunk 2, similarity 0.910")
	assert.Contains(t, out, "channels synchronise goroutines")
}

func TestQueryCommandLimitFlag(t *testing.T) {
	fake := &fakeRetriever{}
	SetRetriever(fake)

	_, err := executeCommand(t, "query", "session-1", "text", "--limit", "3")

	require.NoError(t, err)
	assert.Equal(t, 3, fake.gotK)
}

func TestQueryCommandJSONOutput(t *testing.T) {
	fake := &fakeRetriever{results: []domain.SimilarityResult{
		{Text: "chunk text", Similarity: 0.5, Index: 1},
	}}
	SetRetriever(fake)

	out, err := executeCommand(t, "query", "session-1", "text", "--json")

	require.NoError(t, err)
	var decoded []domain.SimilarityResult
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, 1, decoded[0].Index)
}

func TestQueryCommandNoResults(t *testing.T) {
	SetRetriever(&fakeRetriever{})

	out, err := executeCommand(t, "query", "session-1", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "No chunks stored")
}

func TestQueryCommandFailure(t *testing.T) {
	SetRetriever(&fakeRetriever{err: fmt.Errorf("%w: no source material", domain.ErrNotFound)})

	_, err := executeCommand(t, "query", "missing", "text")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionsLifecycle(t *testing.T) {
	store := memory.NewMaterialStore()
	require.NoError(t, store.Insert(context.Background(), &domain.SourceMaterial{
		SessionID:   "abc-123",
		Topic:       "raft",
		SourceType:  domain.SourceTypeURL,
		SourceURL:   "https://example.com/raft",
		Chunks:      []domain.Chunk{{Text: "a", Index: 0}, {Text: "b", Index: 1}},
		JargonWords: []string{"linearizability"},
		CreatedAt:   time.Now(),
	}))
	SetMaterialStore(store)

	out, err := executeCommand(t, "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "abc-123")
	assert.Contains(t, out, "2 chunks")

	out, err = executeCommand(t, "sessions", "show", "abc-123")
	require.NoError(t, err)
	assert.Contains(t, out, "Topic:    raft")
	assert.Contains(t, out, "linearizability")

	out, err = executeCommand(t, "sessions", "delete", "abc-123")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted session abc-123")

	out, err = executeCommand(t, "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions stored")
}

func TestSessionsShowUnknown(t *testing.T) {
	SetMaterialStore(memory.NewMaterialStore())

	_, err := executeCommand(t, "sessions", "show", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "contextcore version dev")
}
