package enrichment

import (
	"context"

	"catalogfeed/resolver"
)

// LocalEnricher обогащение без внешнего сервиса: каждая запись
// получает детерминированный fallback из локальных полей. Используется
// в dry-run режиме и когда API-ключ не задан.
type LocalEnricher struct{}

// Enrich возвращает fallback-результаты той же длины и порядка
func (LocalEnricher) Enrich(_ context.Context, records []resolver.ResolvedRecord) []Result {
	results := make([]Result, len(records))
	for i, rec := range records {
		results[i] = Fallback(rec)
	}
	return results
}
