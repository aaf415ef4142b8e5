package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"catalogfeed/enrichment"
	"catalogfeed/parser"
	"catalogfeed/pricing"
	"catalogfeed/rates"
	"catalogfeed/registry"
	"catalogfeed/resolver"
)

// Enricher контракт этапа обогащения: длина и порядок результата
// совпадают со входом по построению
type Enricher interface {
	Enrich(ctx context.Context, records []resolver.ResolvedRecord) []enrichment.Result
}

// Deps внешние зависимости конвейера, собираются один раз на запуск
type Deps struct {
	Suppliers *registry.SupplierRegistry
	Brands    *registry.BrandRegistry
	Enricher  Enricher
	Engine    *pricing.Engine
	Rates     rates.Provider
}

// Options настройки конвейера
type Options struct {
	StockLowMax int // верхняя граница low_stock
	Limit       int // >0 — обработать только первые N строк (режим проверки)
}

// Result итог одного запуска. Инвариант учёта: каждая непустая строка
// входа ровно в одном из трёх мест — Records, Skipped или ParseErrors.
type Result struct {
	RunID        string
	ExchangeRate float64
	Started      time.Time
	Completed    time.Time

	TotalLines       int
	Skipped          int
	UnknownSuppliers int

	Records     []OutputRecord
	ParseErrors []parser.ParseFailure
}

// Pipeline строго последовательный конвейер: парсинг → резолв →
// обогащение → цены → сборка. Ошибки на уровне строк локальны и
// восстановимы; фатальны только загрузка реестров и курс валют.
type Pipeline struct {
	deps Deps
	opts Options
}

// New создает конвейер
func New(deps Deps, opts Options) *Pipeline {
	if opts.StockLowMax <= 0 {
		opts.StockLowMax = 9
	}
	return &Pipeline{deps: deps, opts: opts}
}

// Run обрабатывает сырую выгрузку целиком и возвращает итог запуска
func (p *Pipeline) Run(ctx context.Context, rawData []byte) (*Result, error) {
	result := &Result{
		RunID:   uuid.New().String(),
		Started: time.Now(),
	}
	log.Printf("[Pipeline] Run %s started", result.RunID)

	// Без курса не оценить ни одну позицию — отказ фатален
	rate, err := p.deps.Rates.FetchUSD(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exchange rate: %w", err)
	}
	result.ExchangeRate = rate
	log.Printf("[Pipeline] Exchange rate: 1 USD = %g AMD", rate)

	text, err := parser.DecodeInput(rawData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode raw export: %w", err)
	}

	lines := parser.SplitLines(text)
	if p.opts.Limit > 0 && len(lines) > p.opts.Limit {
		log.Printf("[Pipeline] Test mode: processing first %d of %d line(s)", p.opts.Limit, len(lines))
		lines = lines[:p.opts.Limit]
	}
	result.TotalLines = len(lines)

	res := resolver.NewResolver(p.deps.Suppliers, p.deps.Brands, p.opts.StockLowMax)
	res.UnknownSupplier = func(name string) {
		result.UnknownSuppliers++
		log.Printf("[Pipeline] Unknown supplier %q — using international defaults", name)
	}

	var resolved []resolver.ResolvedRecord
	for _, line := range lines {
		row, failure := parser.Parse(line)
		if failure != nil {
			result.ParseErrors = append(result.ParseErrors, *failure)
			continue
		}
		rec, skip := res.Resolve(row)
		if skip != nil {
			result.Skipped++
			continue
		}
		resolved = append(resolved, *rec)
	}

	enriched := p.deps.Enricher.Enrich(ctx, resolved)
	if len(enriched) != len(resolved) {
		// Нарушение контракта обогащения, а не свойство данных
		return nil, fmt.Errorf("enrichment returned %d result(s) for %d record(s)", len(enriched), len(resolved))
	}

	result.Records = make([]OutputRecord, 0, len(resolved))
	for i, rec := range resolved {
		price := p.deps.Engine.Price(pricing.Input{
			PriceRaw:     rec.PriceRaw,
			Currency:     rec.Currency,
			SupplierType: rec.SupplierType,
			Region:       rec.Region,
			Category:     enriched[i].Category,
			Name:         enriched[i].Name,
			ExchangeRate: rate,
		})
		result.Records = append(result.Records, assemble(rec, enriched[i], price))
	}

	result.Completed = time.Now()
	log.Printf("[Pipeline] Run %s completed: %d line(s), %d output, %d skipped, %d error(s), %d unknown supplier(s) in %v",
		result.RunID, result.TotalLines, len(result.Records), result.Skipped,
		len(result.ParseErrors), result.UnknownSuppliers, result.Completed.Sub(result.Started))
	return result, nil
}

// Summary короткая сводка запуска для консоли и API
func (r *Result) Summary() string {
	return fmt.Sprintf("lines=%d output=%d skipped=%d errors=%d unknown_suppliers=%d rate=%g",
		r.TotalLines, len(r.Records), r.Skipped, len(r.ParseErrors), r.UnknownSuppliers, r.ExchangeRate)
}
