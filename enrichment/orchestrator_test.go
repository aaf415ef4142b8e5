package enrichment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogfeed/resolver"
)

// fakeService настраиваемый сервис нормализации для тестов
type fakeService struct {
	calls   int
	failFor int // первые failFor вызовов возвращают ошибку
	handler func(batch []Request) ([]Result, error)
}

func (f *fakeService) NormalizeBatch(_ context.Context, batch []Request) ([]Result, error) {
	f.calls++
	if f.calls <= f.failFor {
		return nil, fmt.Errorf("service unavailable")
	}
	if f.handler != nil {
		return f.handler(batch)
	}
	results := make([]Result, len(batch))
	for i, req := range batch {
		results[i] = Result{
			Name:     "Normalized " + req.NameRaw,
			SKU:      req.Model,
			Category: "Мониторы",
			Brand:    req.Brand,
		}
	}
	return results, nil
}

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
}

func testRecords(n int) []resolver.ResolvedRecord {
	records := make([]resolver.ResolvedRecord, n)
	for i := range records {
		records[i] = resolver.ResolvedRecord{
			Brand:       "Samsung",
			Model:       fmt.Sprintf("M-%03d", i),
			NameRaw:     fmt.Sprintf("Товар %d", i),
			CategoryRaw: "Мониторы",
		}
	}
	return records
}

func TestEnrichHappyPath(t *testing.T) {
	svc := &fakeService{}
	o := NewOrchestrator(svc, OrchestratorConfig{BatchSize: 10, Retry: fastRetry()})

	records := testRecords(25)
	results := o.Enrich(context.Background(), records)

	require.Len(t, results, 25)
	assert.Equal(t, 3, svc.calls, "25 records / batch 10 = 3 calls")
	assert.Equal(t, "Normalized Товар 0", results[0].Name)
	assert.Equal(t, "M-024", results[24].SKU)
}

func TestEnrichRetriesThenSucceeds(t *testing.T) {
	svc := &fakeService{failFor: 2}
	o := NewOrchestrator(svc, OrchestratorConfig{BatchSize: 50, Retry: fastRetry()})

	results := o.Enrich(context.Background(), testRecords(5))

	require.Len(t, results, 5)
	assert.Equal(t, 3, svc.calls)
	assert.Equal(t, "Normalized Товар 0", results[0].Name)
}

func TestEnrichFallsBackAfterRetriesExhausted(t *testing.T) {
	svc := &fakeService{failFor: 1000}
	o := NewOrchestrator(svc, OrchestratorConfig{BatchSize: 50, Retry: fastRetry()})

	records := testRecords(5)
	results := o.Enrich(context.Background(), records)

	// Записи не теряются: столько же результатов из локальных полей
	require.Len(t, results, 5)
	assert.Equal(t, 3, svc.calls)
	for i, r := range results {
		assert.Equal(t, records[i].NameRaw, r.Name)
		assert.Equal(t, records[i].Model, r.SKU)
		assert.Equal(t, "", r.Category)
		assert.Equal(t, records[i].Brand, r.Brand)
	}
}

func TestEnrichLengthMismatchIsRetried(t *testing.T) {
	svc := &fakeService{}
	svc.handler = func(batch []Request) ([]Result, error) {
		// Сервис потерял запись — контракт длины нарушен
		return nil, fmt.Errorf("response length %d does not match batch length %d", len(batch)-1, len(batch))
	}
	o := NewOrchestrator(svc, OrchestratorConfig{BatchSize: 50, Retry: fastRetry()})

	results := o.Enrich(context.Background(), testRecords(4))

	require.Len(t, results, 4)
	assert.Equal(t, 3, svc.calls, "invalid response retried like a transport error")
}

func TestEnrichSanitizesServiceResponse(t *testing.T) {
	svc := &fakeService{}
	svc.handler = func(batch []Request) ([]Result, error) {
		results := make([]Result, len(batch))
		for i := range batch {
			results[i] = Result{Name: "", SKU: "", Category: "Выдуманная категория", Brand: "Samsung"}
		}
		return results, nil
	}
	o := NewOrchestrator(svc, OrchestratorConfig{BatchSize: 50, Retry: fastRetry()})

	records := testRecords(2)
	results := o.Enrich(context.Background(), records)

	require.Len(t, results, 2)
	assert.Equal(t, records[0].NameRaw, results[0].Name, "empty name backfilled")
	assert.Equal(t, records[0].Model, results[0].SKU, "empty sku backfilled")
	assert.Equal(t, "", results[0].Category, "unknown category dropped")
}

func TestEnrichContextCancelledMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := &fakeService{}
	svc.handler = func(batch []Request) ([]Result, error) {
		cancel() // отмена после первого батча
		results := make([]Result, len(batch))
		for i, req := range batch {
			results[i] = Result{Name: req.NameRaw, SKU: req.Model}
		}
		return results, nil
	}
	o := NewOrchestrator(svc, OrchestratorConfig{
		BatchSize:  2,
		Retry:      fastRetry(),
		BatchDelay: time.Minute,
	})

	records := testRecords(6)
	results := o.Enrich(ctx, records)

	// Остаток добит fallback-ом, длина сохранена
	require.Len(t, results, 6)
	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, records[5].NameRaw, results[5].Name)
}

func TestLocalEnricher(t *testing.T) {
	records := testRecords(3)
	results := LocalEnricher{}.Enrich(context.Background(), records)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, records[i].NameRaw, r.Name)
		assert.Equal(t, records[i].Model, r.SKU)
	}
}

func TestFallbackFields(t *testing.T) {
	rec := resolver.ResolvedRecord{Brand: "HP", Model: "450G10", NameRaw: "HP ProBook 450", CategoryRaw: "Ноутбуки"}
	r := Fallback(rec)
	assert.Equal(t, Result{Name: "HP ProBook 450", SKU: "450G10", Category: "", Brand: "HP"}, r)
}
