package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *EmbeddingService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewEmbeddingService(Config{BaseURL: server.URL})
}

func TestEmbed(t *testing.T) {
	var gotReq embedRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.5, -0.25}})
	})

	vector, err := svc.Embed(context.Background(), "chunk text")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, -0.25}, vector)
	assert.Equal(t, DefaultModel, gotReq.Model)
	assert.Equal(t, "chunk text", gotReq.Prompt)
}

func TestEmbedBatchIsSequential(t *testing.T) {
	var requests int
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		requests++
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{float64(requests)}})
	})

	vectors, err := svc.EmbedBatch(context.Background(), []string{"one", "two", "three"})

	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, 3, requests, "one request per text")
	assert.Equal(t, []float32{1}, vectors[0])
	assert.Equal(t, []float32{3}, vectors[2])
}

func TestEmbedServerError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	})

	_, err := svc.Embed(context.Background(), "text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestPing(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"models":[]}`))
	})

	assert.NoError(t, svc.Ping(context.Background()))
}

func TestDefaults(t *testing.T) {
	svc := NewEmbeddingService(Config{})

	assert.Equal(t, DefaultDimensions, svc.Dimensions())
	assert.Equal(t, DefaultModel, svc.ModelName())
}
