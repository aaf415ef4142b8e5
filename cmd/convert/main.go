// Конвертер сырой мульти-поставщицкой выгрузки в фид импорта портала.
// Один запуск: реестры и курс загружаются, выгрузка прогоняется через
// конвейер, фид и лог ошибок пишутся на диск.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"catalogfeed/database"
	"catalogfeed/export"
	"catalogfeed/internal/app"
	"catalogfeed/internal/config"
	"catalogfeed/pipeline"
)

func main() {
	var (
		rawPath  = flag.String("raw", "", "путь к сырой выгрузке (перекрывает FEED_RAW_CSV)")
		outPath  = flag.String("out", "", "путь к выходному фиду (перекрывает FEED_OUTPUT_CSV)")
		limit    = flag.Int("test", 0, "обработать только первые N строк")
		dryRun   = flag.Bool("dry-run", false, "без внешнего сервиса нормализации")
		asJSON   = flag.Bool("json", false, "фид в JSON вместо CSV")
		asExcel  = flag.Bool("xlsx", false, "фид в Excel вместо CSV")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *rawPath != "" {
		cfg.RawPath = *rawPath
	}
	if *outPath != "" {
		cfg.OutputPath = *outPath
	}

	rawData, err := os.ReadFile(cfg.RawPath)
	if err != nil {
		log.Fatalf("Failed to read raw export: %v", err)
	}

	deps, err := app.BuildDeps(cfg, *dryRun)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	p := pipeline.New(deps, pipeline.Options{
		StockLowMax: cfg.StockLowMax,
		Limit:       *limit,
	})
	result, err := p.Run(context.Background(), rawData)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	switch {
	case *asJSON:
		err = export.WriteFeedJSON(withExt(cfg.OutputPath, ".json"), result.Records)
	case *asExcel:
		err = export.WriteFeedXLSX(withExt(cfg.OutputPath, ".xlsx"), result.Records)
	default:
		err = export.WriteFeedCSV(cfg.OutputPath, result.Records)
	}
	if err != nil {
		log.Fatalf("Failed to write feed: %v", err)
	}

	if err := export.WriteErrorsCSV(cfg.ErrorLogPath, result.ParseErrors); err != nil {
		log.Fatalf("Failed to write error log: %v", err)
	}

	if cfg.DatabasePath != "" {
		db, err := database.Open(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to open run history database: %v", err)
		}
		defer db.Close()
		if err := db.SaveRun(result); err != nil {
			log.Printf("Warning: failed to persist run: %v", err)
		}
	}

	fmt.Println(strings.Repeat("─", 50))
	fmt.Printf("Raw lines processed : %d\n", result.TotalLines)
	fmt.Printf("Skipped             : %d\n", result.Skipped)
	fmt.Printf("Parse errors        : %d → %s\n", len(result.ParseErrors), cfg.ErrorLogPath)
	fmt.Printf("Unknown suppliers   : %d\n", result.UnknownSuppliers)
	fmt.Printf("Output rows         : %d → %s\n", len(result.Records), cfg.OutputPath)
	fmt.Println(strings.Repeat("─", 50))
}

func withExt(path, ext string) string {
	if idx := strings.LastIndex(path, "."); idx > 0 {
		return path[:idx] + ext
	}
	return path + ext
}
