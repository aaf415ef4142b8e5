package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func chatReply(t *testing.T, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.InDelta(t, 0.1, req.Temperature, 1e-9)

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func testClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		Model:     "test-model",
		Timeout:   time.Second,
		RateLimit: rate.Inf,
	})
}

func TestNormalizeBatch(t *testing.T) {
	content := `[{"name":"Samsung S27A600 27\" monitor","sku":"LS27A600","category":"Мониторы","brand":"Samsung"}]`
	srv := httptest.NewServer(chatReply(t, content))
	defer srv.Close()

	results, err := testClient(srv.URL).NormalizeBatch(context.Background(), []Request{
		{Brand: "Samsung", Model: "LS27A600", NameRaw: "Samsung S27A600 27in", CategoryRaw: "Мониторы"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "LS27A600", results[0].SKU)
	assert.Equal(t, "Мониторы", results[0].Category)
}

func TestNormalizeBatchStripsCodeFences(t *testing.T) {
	content := "```json\n[{\"name\":\"X\",\"sku\":\"1\",\"category\":\"\",\"brand\":\"\"}]\n```"
	srv := httptest.NewServer(chatReply(t, content))
	defer srv.Close()

	results, err := testClient(srv.URL).NormalizeBatch(context.Background(), []Request{{NameRaw: "x"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "X", results[0].Name)
}

func TestNormalizeBatchLengthMismatch(t *testing.T) {
	// Сервис вернул один результат на батч из двух запросов
	content := `[{"name":"X","sku":"1","category":"","brand":""}]`
	srv := httptest.NewServer(chatReply(t, content))
	defer srv.Close()

	_, err := testClient(srv.URL).NormalizeBatch(context.Background(), []Request{{NameRaw: "a"}, {NameRaw: "b"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match batch length")
}

func TestNormalizeBatchNotJSONArray(t *testing.T) {
	srv := httptest.NewServer(chatReply(t, "Вот ваши товары: ..."))
	defer srv.Close()

	_, err := testClient(srv.URL).NormalizeBatch(context.Background(), []Request{{NameRaw: "a"}})
	require.Error(t, err)
}

func TestNormalizeBatchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":"rate limited"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).NormalizeBatch(context.Background(), []Request{{NameRaw: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestNormalizeBatchNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).NormalizeBatch(context.Background(), []Request{{NameRaw: "a"}})
	require.Error(t, err)
}
