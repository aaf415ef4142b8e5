package resolver

import (
	"strconv"
	"strings"

	"catalogfeed/parser"
	"catalogfeed/registry"
)

// Статусы наличия, вычисляемые на этапе резолва
const (
	StockInStock  = "in_stock"
	StockLowStock = "low_stock"
)

// Причины пропуска строки. Пропуск — не ошибка: строка учитывается
// отдельным счётчиком и не попадает в лог ошибок.
const (
	SkipSeparatorRow = "separator_row"
	SkipZeroStock    = "zero_stock"
)

// Сентинели "нет MOQ" в сырой выгрузке
var noMOQSentinels = map[string]bool{
	"NO":  true,
	"":    true,
	"N/A": true,
	"-":   true,
}

// ResolvedRecord запись после разрешения полей: канонический бренд,
// числовые количества, статус наличия и данные поставщика,
// необходимые дальше по конвейеру.
type ResolvedRecord struct {
	Supplier             string
	SupplierType         string
	Region               string
	Brand                string
	Model                string
	NameRaw              string
	CategoryRaw          string
	PriceRaw             string
	Currency             string
	AvailableQuantity    int
	MOQ                  int
	StockStatus          string
	ETA                  string
	VisibleCustomerTypes string
}

// SkipReason причина, по которой строка исключена из выгрузки
type SkipReason struct {
	Reason string
}

// Resolver разрешает поля разобранной строки по реестрам
type Resolver struct {
	suppliers *registry.SupplierRegistry
	brands    *registry.BrandRegistry
	lowMax    int

	// UnknownSupplier вызывается при каждом неизвестном поставщике
	// (предупреждение наружу, обработка продолжается)
	UnknownSupplier func(name string)
}

// NewResolver создает резолвер. lowMax — верхняя граница количества
// для статуса low_stock у международных поставщиков.
func NewResolver(suppliers *registry.SupplierRegistry, brands *registry.BrandRegistry, lowMax int) *Resolver {
	return &Resolver{suppliers: suppliers, brands: brands, lowMax: lowMax}
}

// Resolve превращает ParsedRow в ResolvedRecord либо в причину пропуска.
//
// Фильтры: строки-разделители категорий (Model=PN, цена 0) и позиции
// с нулевым остатком (решение бизнеса: недоступное не импортируем).
func (r *Resolver) Resolve(row *parser.ParsedRow) (*ResolvedRecord, *SkipReason) {
	if isSeparatorRow(row) {
		return nil, &SkipReason{Reason: SkipSeparatorRow}
	}

	quantity := parseQuantity(row.StockRaw)
	if quantity == 0 {
		return nil, &SkipReason{Reason: SkipZeroStock}
	}

	supplierName := strings.TrimSpace(row.Supplier)
	profile, found := r.suppliers.Lookup(supplierName)
	if !found && r.UnknownSupplier != nil {
		r.UnknownSupplier(supplierName)
	}

	currency := strings.ToUpper(strings.TrimSpace(row.Currency))
	if currency == "" {
		currency = profile.Currency
	}

	return &ResolvedRecord{
		Supplier:             supplierName,
		SupplierType:         profile.Type,
		Region:               profile.Region,
		Brand:                ResolveBrand(row.BrandRaw, row.NameRaw, r.brands),
		Model:                strings.TrimSpace(row.Model),
		NameRaw:              strings.TrimSpace(row.NameRaw),
		CategoryRaw:          strings.TrimSpace(row.CategoryRaw),
		PriceRaw:             strings.TrimSpace(row.PriceRaw),
		Currency:             currency,
		AvailableQuantity:    quantity,
		MOQ:                  parseMOQ(row.MOQRaw),
		StockStatus:          stockStatus(quantity, profile.Type, r.lowMax),
		ETA:                  profile.ETA,
		VisibleCustomerTypes: profile.VisibleCustomerTypes,
	}, nil
}

// isSeparatorRow распознает строки-заголовки категорий, замешанные в
// данные (Model=PN, цена ровно 0)
func isSeparatorRow(row *parser.ParsedRow) bool {
	if strings.ToUpper(strings.TrimSpace(row.Model)) != "PN" {
		return false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(row.PriceRaw), 64)
	if err != nil {
		price = 0
	}
	return price == 0
}

// parseQuantity приводит сырое значение остатка к неотрицательному
// целому; нечисловые значения дают 0
func parseQuantity(raw string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(v)
}

// parseMOQ приводит сырой MOQ к неотрицательному целому.
// Сентинели "нет MOQ" ("NO", "", "N/A", "-") дают 0.
func parseMOQ(raw string) int {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if noMOQSentinels[raw] {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(v)
}

// stockStatus вычисляет статус наличия. Локальные поставщики всегда
// in_stock; у международных количество 1..lowMax даёт low_stock
// (нулевой остаток отфильтрован раньше).
func stockStatus(quantity int, supplierType string, lowMax int) string {
	if supplierType == registry.SupplierLocal {
		return StockInStock
	}
	if quantity >= 1 && quantity <= lowMax {
		return StockLowStock
	}
	return StockInStock
}
