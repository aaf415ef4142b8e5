// Package app собирает зависимости конвейера из конфигурации:
// реестры, таблицы ценообразования, клиентов внешних сервисов.
package app

import (
	"fmt"
	"log"
	"strings"

	"catalogfeed/enrichment"
	"catalogfeed/internal/config"
	"catalogfeed/pipeline"
	"catalogfeed/pricing"
	"catalogfeed/rates"
	"catalogfeed/registry"
)

// BuildDeps загружает реестры и создает зависимости конвейера.
// Ошибка загрузки любого реестра фатальна: частичный запуск не
// считается валидным результатом.
func BuildDeps(cfg *config.Config, dryRun bool) (pipeline.Deps, error) {
	suppliers, err := loadSuppliers(cfg)
	if err != nil {
		return pipeline.Deps{}, fmt.Errorf("failed to load supplier registry: %w", err)
	}

	brands, err := loadBrands(cfg)
	if err != nil {
		return pipeline.Deps{}, fmt.Errorf("failed to load brand registry: %w", err)
	}

	profiles := registry.DefaultCostProfiles()
	if cfg.CostProfilesPath != "" {
		profiles, err = registry.LoadCostProfilesJSON(cfg.CostProfilesPath)
		if err != nil {
			return pipeline.Deps{}, fmt.Errorf("failed to load cost profiles: %w", err)
		}
	}

	freight := registry.DefaultFreightTable()
	if cfg.FreightPath != "" {
		freight, err = registry.LoadFreightJSON(cfg.FreightPath)
		if err != nil {
			return pipeline.Deps{}, fmt.Errorf("failed to load freight table: %w", err)
		}
	}

	engine := pricing.NewEngine(pricing.Rates{
		LocalAMDMargin: cfg.LocalAMDMargin,
		LocalUSDMargin: cfg.LocalUSDMargin,
		VATRate:        cfg.VATRate,
		BankFeeRate:    cfg.BankFeeRate,
		BrokerFeeRate:  cfg.BrokerFeeRate,
	}, profiles, freight, pricing.NewDetector(), cfg.DefaultRegion)

	return pipeline.Deps{
		Suppliers: suppliers,
		Brands:    brands,
		Enricher:  buildEnricher(cfg, dryRun),
		Engine:    engine,
		Rates: rates.NewFetcher(
			rates.NewClient(cfg.RateURL, cfg.RateTimeout),
			rates.NewHTMLProvider(cfg.RateHTMLURL, cfg.RateTimeout),
		),
	}, nil
}

func buildEnricher(cfg *config.Config, dryRun bool) pipeline.Enricher {
	if dryRun || cfg.AIAPIKey == "" {
		if !dryRun {
			log.Printf("[App] No AI API key configured — enrichment falls back to local fields")
		}
		return enrichment.LocalEnricher{}
	}

	client := enrichment.NewClient(enrichment.ClientConfig{
		BaseURL: cfg.AIBaseURL,
		APIKey:  cfg.AIAPIKey,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
	})
	return enrichment.NewOrchestrator(client, enrichment.OrchestratorConfig{
		BatchSize: cfg.BatchSize,
		Retry: enrichment.RetryConfig{
			MaxAttempts:  cfg.MaxAttempts,
			InitialDelay: cfg.RetryDelay,
			MaxDelay:     enrichment.MaxRetryDelay,
			Multiplier:   2.0,
		},
		BatchDelay: cfg.BatchDelay,
	})
}

func loadSuppliers(cfg *config.Config) (*registry.SupplierRegistry, error) {
	if strings.HasSuffix(strings.ToLower(cfg.SuppliersPath), ".xlsx") {
		return registry.LoadSuppliersXLSX(cfg.SuppliersPath, cfg.DefaultRegion)
	}
	return registry.LoadSuppliersCSV(cfg.SuppliersPath, cfg.DefaultRegion)
}

func loadBrands(cfg *config.Config) (*registry.BrandRegistry, error) {
	if strings.HasSuffix(strings.ToLower(cfg.BrandsPath), ".xlsx") {
		return registry.LoadBrandsXLSX(cfg.BrandsPath)
	}
	return registry.LoadBrandsCSV(cfg.BrandsPath)
}
