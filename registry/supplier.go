package registry

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Типы поставщиков
const (
	SupplierLocal         = "local"
	SupplierInternational = "international"
)

// SupplierProfile профиль поставщика из реестра.
// Region используется движком цен для выбора тарифов доставки;
// у локальных поставщиков он пустой.
type SupplierProfile struct {
	Name                 string
	Type                 string
	Currency             string
	ETA                  string
	VisibleCustomerTypes string
	Region               string
}

// SupplierRegistry реестр поставщиков, загружается один раз на запуск
type SupplierRegistry struct {
	profiles      map[string]SupplierProfile
	defaultRegion string
}

// DefaultSupplierProfile возвращает профиль для неизвестного поставщика:
// международный, цены в USD, общие сроки и видимость.
func DefaultSupplierProfile(name, region string) SupplierProfile {
	return SupplierProfile{
		Name:                 name,
		Type:                 SupplierInternational,
		Currency:             "USD",
		ETA:                  "14-21 дней",
		VisibleCustomerTypes: "дилер;корпоративный;гос. учреждение",
		Region:               region,
	}
}

// NewSupplierRegistry создает пустой реестр поставщиков
func NewSupplierRegistry(defaultRegion string) *SupplierRegistry {
	return &SupplierRegistry{
		profiles:      make(map[string]SupplierProfile),
		defaultRegion: defaultRegion,
	}
}

// Add добавляет профиль в реестр
func (r *SupplierRegistry) Add(p SupplierProfile) {
	if p.Region == "" && p.Type == SupplierInternational {
		p.Region = r.defaultRegion
	}
	r.profiles[p.Name] = p
}

// Len возвращает количество поставщиков в реестре
func (r *SupplierRegistry) Len() int {
	return len(r.profiles)
}

// Lookup ищет профиль по имени поставщика. Для неизвестного поставщика
// возвращает международный профиль по умолчанию и found=false —
// вызывающая сторона логирует предупреждение, обработка продолжается.
func (r *SupplierRegistry) Lookup(name string) (SupplierProfile, bool) {
	name = strings.TrimSpace(name)
	if p, ok := r.profiles[name]; ok {
		return p, true
	}
	return DefaultSupplierProfile(name, r.defaultRegion), false
}

// LoadSuppliersCSV загружает реестр поставщиков из CSV файла.
// Схема: supplier_name, type, currency, eta, visibleCustomerTypes[, region]
func LoadSuppliersCSV(path, defaultRegion string) (*SupplierRegistry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open suppliers file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read suppliers header: %w", err)
	}
	cols := headerIndex(header)

	reg := NewSupplierRegistry(defaultRegion)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read suppliers row: %w", err)
		}
		p := supplierFromRow(record, cols)
		if p.Name == "" {
			continue
		}
		reg.Add(p)
	}

	log.Printf("[Registry] Loaded %d supplier(s) from %s", reg.Len(), path)
	return reg, nil
}

// LoadSuppliersXLSX загружает реестр поставщиков из Excel файла
// (первый лист, та же схема колонок, что и в CSV)
func LoadSuppliersXLSX(path, defaultRegion string) (*SupplierRegistry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open suppliers Excel file: %w", err)
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
		return nil, fmt.Errorf("suppliers sheet is empty")
	}

	cols := headerIndex(rows[0])
	reg := NewSupplierRegistry(defaultRegion)
	for _, row := range rows[1:] {
		p := supplierFromRow(row, cols)
		if p.Name == "" {
			continue
		}
		reg.Add(p)
	}

	log.Printf("[Registry] Loaded %d supplier(s) from %s", reg.Len(), path)
	return reg, nil
}

// headerIndex строит индекс колонок по нормализованным заголовкам
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func supplierFromRow(row []string, cols map[string]int) SupplierProfile {
	cell := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	return SupplierProfile{
		Name:                 cell("supplier_name"),
		Type:                 cell("type"),
		Currency:             strings.ToUpper(cell("currency")),
		ETA:                  cell("eta"),
		VisibleCustomerTypes: cell("visiblecustomertypes"),
		Region:               strings.ToLower(cell("region")),
	}
}
