package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
)

// DefaultURL JSON-эндпоинт курсов Центробанка Армении
const DefaultURL = "https://cb.am/latest.json.php"

// Provider источник курса USD→AMD
type Provider interface {
	FetchUSD(ctx context.Context) (float64, error)
}

// Client клиент JSON-эндпоинта ЦБ. Эндпоинт возвращает карту
// {"USD": "387.5", "EUR": "...", ...}; используется только USD.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient создает клиент курсов валют
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchUSD возвращает текущий курс AMD за 1 USD
func (c *Client) FetchUSD(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code from rate endpoint: %d", resp.StatusCode)
	}

	// Значения приходят строками, но подстрахуемся и на числа
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return 0, fmt.Errorf("failed to decode rate response: %w", err)
	}

	usd, ok := raw["USD"]
	if !ok {
		return 0, fmt.Errorf("rate response has no USD entry")
	}
	return parseRate(usd)
}

func parseRate(raw json.RawMessage) (float64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		rate, err := strconv.ParseFloat(s, 64)
		if err != nil || rate <= 0 {
			return 0, fmt.Errorf("invalid USD rate value %q", s)
		}
		return rate, nil
	}
	var rate float64
	if err := json.Unmarshal(raw, &rate); err != nil || rate <= 0 {
		return 0, fmt.Errorf("invalid USD rate value %s", string(raw))
	}
	return rate, nil
}

// Fetcher перебирает провайдеров по порядку и возвращает первый
// успешный курс. Если не ответил ни один — ошибка фатальна для
// запуска: без курса ни одну позицию не оценить.
type Fetcher struct {
	providers []Provider
}

// NewFetcher создает фетчер из провайдеров в порядке приоритета
func NewFetcher(providers ...Provider) *Fetcher {
	return &Fetcher{providers: providers}
}

// FetchUSD возвращает курс от первого ответившего провайдера
func (f *Fetcher) FetchUSD(ctx context.Context) (float64, error) {
	var lastErr error
	for i, p := range f.providers {
		rate, err := p.FetchUSD(ctx)
		if err == nil {
			if i > 0 {
				log.Printf("[Rates] Provider %d/%d succeeded after primary failure", i+1, len(f.providers))
			}
			return rate, nil
		}
		lastErr = err
		log.Printf("[Rates] Provider %d/%d failed: %v", i+1, len(f.providers), err)
	}
	return 0, fmt.Errorf("all rate providers failed: %w", lastErr)
}
