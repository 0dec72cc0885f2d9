package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-assistant-api/internal/config"
)

func newEmbedServer(t *testing.T, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/embed", r.URL.Path)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Model)

		// 每条文本返回一个固定维度的向量
		resp := embedResponse{TokensUsed: len(req.Texts)}
		for i := range req.Texts {
			resp.Embeddings = append(resp.Embeddings, []float32{float32(i), 0.5})
		}
		_ = json.NewEncoder(w).Encode(&resp)
	}))
}

func TestEmbedBatches(t *testing.T) {
	var calls atomic.Int64
	srv := newEmbedServer(t, &calls)
	defer srv.Close()

	client := NewClient(&config.EmbeddingConfig{
		Endpoint:  srv.URL,
		BatchSize: 2,
	})

	vecs, err := client.Embed(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Len(t, vecs, 3)
	assert.Equal(t, int64(2), calls.Load())
}

func TestEmbedEmptyInput(t *testing.T) {
	client := NewClient(&config.EmbeddingConfig{Endpoint: "http://localhost:1"})

	vecs, err := client.Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vecs)
}

func TestEmbedStringsConvertsToFloat64(t *testing.T) {
	var calls atomic.Int64
	srv := newEmbedServer(t, &calls)
	defer srv.Close()

	client := NewClient(&config.EmbeddingConfig{Endpoint: srv.URL})

	vecs, err := client.EmbedStrings(context.Background(), []string{"hello"})
	require.NoError(t, err)

	require.Len(t, vecs, 1)
	assert.Equal(t, []float64{0, 0.5}, vecs[0])
}

func TestEmbedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(&config.EmbeddingConfig{Endpoint: srv.URL})

	_, err := client.Embed(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=502")
}
