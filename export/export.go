// Package export пишет готовый фид и лог ошибок парсинга в форматы,
// которые принимает портал: CSV с BOM, Excel и JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"catalogfeed/parser"
	"catalogfeed/pipeline"
)

// feedHeaders колонки фида в порядке, ожидаемом импортом портала
var feedHeaders = []string{
	"id", "name", "sku", "price", "stock", "eta", "description",
	"availableQuantity", "moq", "brand", "category", "visibleCustomerTypes",
}

func feedRow(r pipeline.OutputRecord) []string {
	return []string{
		r.ID, r.Name, r.SKU, strconv.Itoa(r.Price), r.Stock, r.ETA, r.Description,
		strconv.Itoa(r.AvailableQuantity), strconv.Itoa(r.MOQ),
		r.Brand, r.Category, r.VisibleCustomerTypes,
	}
}

// WriteFeedCSV пишет фид в CSV. BOM в начале обязателен: портал и
// Excel ожидают его для корректной кириллицы.
func WriteFeedCSV(path string, records []pipeline.OutputRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create feed file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(feedHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(feedRow(r)); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush feed: %w", err)
	}

	log.Printf("[Export] Wrote %d record(s) to %s", len(records), path)
	return nil
}

// WriteFeedXLSX пишет фид в Excel (один лист, та же схема колонок)
func WriteFeedXLSX(path string, records []pipeline.OutputRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, h := range feedHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for i, r := range records {
		for col, v := range feedRow(r) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel feed: %w", err)
	}
	log.Printf("[Export] Wrote %d record(s) to %s", len(records), path)
	return nil
}

// WriteFeedJSON пишет фид в JSON (массив записей)
func WriteFeedJSON(path string, records []pipeline.OutputRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal feed: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON feed: %w", err)
	}
	log.Printf("[Export] Wrote %d record(s) to %s", len(records), path)
	return nil
}

// WriteErrorsCSV пишет лог нераспознанных строк: lineno, raw, reason.
// Пустой список ошибок — файл не создаётся.
func WriteErrorsCSV(path string, failures []parser.ParseFailure) error {
	if len(failures) == 0 {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create error log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"lineno", "raw", "reason"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range failures {
		if err := w.Write([]string{strconv.Itoa(e.LineNo), e.Raw, e.Reason}); err != nil {
			return fmt.Errorf("failed to write error row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush error log: %w", err)
	}

	log.Printf("[Export] Wrote %d parse error(s) to %s", len(failures), path)
	return nil
}
