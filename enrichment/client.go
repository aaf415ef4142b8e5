package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL OpenAI-совместимый эндпоинт сервиса нормализации
const DefaultBaseURL = "https://api.arliai.com/v1"

// Client HTTP-клиент сервиса нормализации (chat completions API)
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// ClientConfig конфигурация клиента нормализации
type ClientConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	Timeout   time.Duration
	RateLimit rate.Limit
}

// NewClient создает клиент сервиса нормализации
func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = rate.Every(2 * time.Second)
	}
	return &Client{
		baseURL:     config.BaseURL,
		apiKey:      config.APIKey,
		model:       config.Model,
		temperature: 0.1, // детерминированность важнее вариативности
		httpClient:  &http.Client{Timeout: config.Timeout},
		limiter:     rate.NewLimiter(config.RateLimit, 1),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

var codeFenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*|\\s*```$")

// NormalizeBatch отправляет один батч сервису и возвращает результаты.
// Ответ обязан быть JSON-массивом той же длины, что и батч; всё
// остальное — ошибка, подлежащая повтору на уровне оркестратора.
func (c *Client) NormalizeBatch(ctx context.Context, batch []Request) ([]Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(payload)},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("normalization request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("response has no choices")
	}

	content := strings.TrimSpace(chat.Choices[0].Message.Content)
	content = codeFenceRe.ReplaceAllString(content, "")

	var results []Result
	if err := json.Unmarshal([]byte(content), &results); err != nil {
		return nil, fmt.Errorf("response is not a JSON array: %w", err)
	}
	if len(results) != len(batch) {
		return nil, fmt.Errorf("response length %d does not match batch length %d", len(results), len(batch))
	}
	return results, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
