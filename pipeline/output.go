package pipeline

import (
	"catalogfeed/enrichment"
	"catalogfeed/registry"
	"catalogfeed/resolver"
)

// StockOnOrder сентинель наличия для международных поставщиков в
// финальной выгрузке. Вычисленный in_stock/low_stock у них остаётся
// внутренним: портал показывает такие позиции как "под заказ".
const StockOnOrder = "on_order"

// OutputRecord финальная запись фида в схеме импорта портала.
// Создаётся один раз на пару ResolvedRecord+Result и не мутируется.
// id и description всегда пустые — их заполняет портал.
type OutputRecord struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	SKU                  string `json:"sku"`
	Price                int    `json:"price"`
	Stock                string `json:"stock"`
	ETA                  string `json:"eta"`
	Description          string `json:"description"`
	AvailableQuantity    int    `json:"availableQuantity"`
	MOQ                  int    `json:"moq"`
	Brand                string `json:"brand"`
	Category             string `json:"category"`
	VisibleCustomerTypes string `json:"visibleCustomerTypes"`
}

// assemble собирает финальную запись из разрешённой записи, результата
// обогащения и вычисленной цены
func assemble(rec resolver.ResolvedRecord, enr enrichment.Result, price int) OutputRecord {
	stock := rec.StockStatus
	if rec.SupplierType == registry.SupplierInternational {
		stock = StockOnOrder
	}
	return OutputRecord{
		ID:                   "",
		Name:                 enr.Name,
		SKU:                  enr.SKU,
		Price:                price,
		Stock:                stock,
		ETA:                  rec.ETA,
		Description:          "",
		AvailableQuantity:    rec.AvailableQuantity,
		MOQ:                  rec.MOQ,
		Brand:                enr.Brand,
		Category:             enr.Category,
		VisibleCustomerTypes: rec.VisibleCustomerTypes,
	}
}
