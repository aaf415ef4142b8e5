package enrichment

import (
	"context"
	"log"
	"time"

	"catalogfeed/registry"
	"catalogfeed/resolver"
)

// Service контракт сервиса нормализации: батч запросов → столько же
// результатов в том же порядке
type Service interface {
	NormalizeBatch(ctx context.Context, batch []Request) ([]Result, error)
}

// DefaultBatchSize позиций на один вызов сервиса
const DefaultBatchSize = 50

// Orchestrator батчевый оркестратор обогащения. Записи не теряются
// никогда: после исчерпания повторов батч заполняется локальным
// fallback-ом, длина результата по построению равна длине входа.
type Orchestrator struct {
	service    Service
	batchSize  int
	retry      RetryConfig
	batchDelay time.Duration // пауза между батчами (не после последнего)
}

// OrchestratorConfig конфигурация оркестратора
type OrchestratorConfig struct {
	BatchSize  int
	Retry      RetryConfig
	BatchDelay time.Duration
}

// NewOrchestrator создает оркестратор обогащения
func NewOrchestrator(service Service, config OrchestratorConfig) *Orchestrator {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.Retry.MaxAttempts <= 0 {
		config.Retry = DefaultRetryConfig()
	}
	return &Orchestrator{
		service:    service,
		batchSize:  config.BatchSize,
		retry:      config.Retry,
		batchDelay: config.BatchDelay,
	}
}

// Enrich обогащает записи батчами фиксированного размера.
// Результат всегда той же длины и порядка, что и вход.
func (o *Orchestrator) Enrich(ctx context.Context, records []resolver.ResolvedRecord) []Result {
	results := make([]Result, 0, len(records))
	batches := (len(records) + o.batchSize - 1) / o.batchSize

	for i := 0; i < len(records); i += o.batchSize {
		end := i + o.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[i:end]
		batchNo := i/o.batchSize + 1

		log.Printf("[Enrichment] Batch %d/%d (%d products)", batchNo, batches, len(batch))
		results = append(results, o.enrichBatch(ctx, batch)...)

		// Пауза между батчами, чтобы не упереться во внешний
		// rate limit; после последнего батча не нужна
		if end < len(records) && o.batchDelay > 0 {
			select {
			case <-ctx.Done():
				// Остаток добиваем fallback-ом, записи не теряем
				for _, rec := range records[end:] {
					results = append(results, Fallback(rec))
				}
				return results
			case <-time.After(o.batchDelay):
			}
		}
	}
	return results
}

// enrichBatch один батч: повторы с экспоненциальной задержкой, затем
// детерминированный fallback из локальных полей
func (o *Orchestrator) enrichBatch(ctx context.Context, batch []resolver.ResolvedRecord) []Result {
	payload := make([]Request, len(batch))
	for i, rec := range batch {
		payload[i] = Request{
			Brand:       rec.Brand,
			Model:       rec.Model,
			NameRaw:     rec.NameRaw,
			CategoryRaw: rec.CategoryRaw,
		}
	}

	var results []Result
	err := Retry(ctx, func() error {
		r, err := o.service.NormalizeBatch(ctx, payload)
		if err != nil {
			return err
		}
		results = r
		return nil
	}, o.retry, "normalize batch")

	if err != nil {
		log.Printf("[Enrichment] Falling back to local fields for %d record(s)", len(batch))
		fallback := make([]Result, len(batch))
		for i, rec := range batch {
			fallback[i] = Fallback(rec)
		}
		return fallback
	}

	for i := range results {
		results[i] = sanitize(results[i], batch[i])
	}
	return results
}

// Fallback синтезирует результат обогащения из локальных полей.
// Детерминированный: используется и при полном отказе сервиса,
// и при отмене контекста.
func Fallback(rec resolver.ResolvedRecord) Result {
	return Result{
		Name:     rec.NameRaw,
		SKU:      rec.Model,
		Category: "",
		Brand:    rec.Brand,
	}
}

// sanitize чистит ответ сервиса: пустые поля добиваются локальными
// значениями, категория вне словаря портала сбрасывается в пустую
func sanitize(r Result, rec resolver.ResolvedRecord) Result {
	if r.Name == "" {
		r.Name = rec.NameRaw
	}
	if r.SKU == "" {
		r.SKU = rec.Model
	}
	if !registry.IsValidCategory(r.Category) {
		log.Printf("[Enrichment] Dropping unknown category %q", r.Category)
		r.Category = ""
	}
	r.Brand = ResolveBrand(rec.Brand, r.Brand)
	return r
}
