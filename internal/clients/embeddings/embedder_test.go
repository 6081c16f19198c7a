package embeddings_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/character-sheet/internal/clients/embeddings"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestEmbed(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{
		"object": "list",
		"data": [{"object": "embedding", "index": 0, "embedding": [0.5, -0.25, 1]}],
		"model": "text-embedding-3-small",
		"usage": {"prompt_tokens": 2, "total_tokens": 2}
	}`)

	e, err := embeddings.New(&embeddings.Config{APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	vector, err := e.Embed(context.Background(), "  sneak past guards ")
	require.NoError(t, err)

	assert.Equal(t, []float32{0.5, -0.25, 1}, vector)
	assert.Equal(t, "sneak past guards", (*got)["input"])
	assert.Equal(t, "text-embedding-3-small", (*got)["model"])
}

func TestEmbed_EmptyResponse(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"object": "list", "data": [], "model": "text-embedding-3-small"}`)

	e, err := embeddings.New(&embeddings.Config{APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	_, err = e.Embed(context.Background(), "climb")
	assert.Equal(t, sheeterr.CodeInternal, sheeterr.GetCode(err))
}

func TestEmbed_APIError(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, `{"error": {"message": "bad key", "type": "invalid_request_error"}}`)

	e, err := embeddings.New(&embeddings.Config{APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	_, err = e.Embed(context.Background(), "climb")
	assert.Error(t, err)
}

func TestEmbed_EmptyText(t *testing.T) {
	e, err := embeddings.New(&embeddings.Config{APIKey: "test-key"})
	require.NoError(t, err)

	_, err = e.Embed(context.Background(), "   ")
	assert.True(t, sheeterr.IsInvalidArgument(err))
}

func TestNew_NotConfigured(t *testing.T) {
	_, err := embeddings.New(&embeddings.Config{})
	assert.True(t, sheeterr.IsUnavailable(err))

	_, err = embeddings.New(nil)
	assert.True(t, sheeterr.IsUnavailable(err))
}
