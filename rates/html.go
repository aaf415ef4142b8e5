package rates

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultHTMLURL страница курсов ЦБ Армении
const DefaultHTMLURL = "https://cb.am/"

// HTMLProvider запасной источник курса: разбирает таблицу курсов на
// странице ЦБ. Используется, когда JSON-эндпоинт недоступен.
type HTMLProvider struct {
	url        string
	httpClient *http.Client
}

// NewHTMLProvider создает HTML-провайдер курсов
func NewHTMLProvider(url string, timeout time.Duration) *HTMLProvider {
	if url == "" {
		url = DefaultHTMLURL
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTMLProvider{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchUSD ищет строку таблицы с кодом USD и берёт первое числовое
// значение из соседних ячеек
func (p *HTMLProvider) FetchUSD(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create rate page request: %w", err)
	}
	req.Header.Set("User-Agent", "catalogfeed/1.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rate page request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code from rate page: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rate page: %w", err)
	}

	var rate float64
	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return true
		}
		found := false
		cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
			text := strings.TrimSpace(cell.Text())
			if !found {
				if strings.EqualFold(text, "USD") {
					found = true
				}
				return true
			}
			if v, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64); err == nil && v > 0 {
				rate = v
				return false
			}
			return true
		})
		return rate == 0
	})

	if rate == 0 {
		return 0, fmt.Errorf("USD rate not found on rate page")
	}
	return rate, nil
}
