package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url string) *GeminiClient {
	c := NewGeminiClient("test-key", "test-model")
	c.baseURL = url
	c.backoff = time.Millisecond
	return c
}

func TestGeminiClientTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}
		assert.Equal(t, "琴清", req.Contents[0].Parts[0].Text)

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":" The zither "},{"text":"is clear \n"}]}}]}`))
	}))
	defer srv.Close()

	out, err := testClient(srv.URL).Translate(context.Background(), "system", "琴清")
	require.NoError(t, err)
	assert.Equal(t, "The zither is clear", out)
}

func TestGeminiClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	out, err := testClient(srv.URL).Translate(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGeminiClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Translate(context.Background(), "s", "u")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGeminiClientEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Translate(context.Background(), "s", "u")
	assert.ErrorContains(t, err, "no candidates")
}
