package registry

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// BrandRegistry упорядоченный набор канонических названий брендов.
// Список отсортирован по убыванию длины: жадный поиск по имени товара
// сначала пробует более длинные, более специфичные названия
// ("HP Inc" раньше "HP").
type BrandRegistry struct {
	brands []string
}

// NewBrandRegistry создает реестр из списка брендов
func NewBrandRegistry(brands []string) *BrandRegistry {
	cleaned := make([]string, 0, len(brands))
	for _, b := range brands {
		b = strings.TrimSpace(b)
		if b != "" {
			cleaned = append(cleaned, b)
		}
	}
	sort.SliceStable(cleaned, func(i, j int) bool {
		return len(cleaned[i]) > len(cleaned[j])
	})
	return &BrandRegistry{brands: cleaned}
}

// Brands возвращает бренды в порядке убывания длины
func (r *BrandRegistry) Brands() []string {
	return r.brands
}

// Len возвращает количество брендов в реестре
func (r *BrandRegistry) Len() int {
	return len(r.brands)
}

// LoadBrandsCSV загружает реестр брендов из CSV файла.
// Схема: brand (одно каноническое название на строку)
func LoadBrandsCSV(path string) (*BrandRegistry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open brands file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read brands header: %w", err)
	}
	cols := headerIndex(header)
	idx, ok := cols["brand"]
	if !ok {
		idx = 0
	}

	var brands []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read brands row: %w", err)
		}
		if idx < len(record) {
			brands = append(brands, record[idx])
		}
	}

	reg := NewBrandRegistry(brands)
	log.Printf("[Registry] Loaded %d brand(s) from %s", reg.Len(), path)
	return reg, nil
}

// LoadBrandsXLSX загружает реестр брендов из Excel файла (первый лист,
// колонка brand)
func LoadBrandsXLSX(path string) (*BrandRegistry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open brands Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no sheets found in %s", path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("brands sheet is empty")
	}

	cols := headerIndex(rows[0])
	idx, ok := cols["brand"]
	if !ok {
		idx = 0
	}

	var brands []string
	for _, row := range rows[1:] {
		if idx < len(row) {
			brands = append(brands, row[idx])
		}
	}

	reg := NewBrandRegistry(brands)
	log.Printf("[Registry] Loaded %d brand(s) from %s", reg.Len(), path)
	return reg, nil
}
