package enrichment

// Request минимальный payload одной позиции для сервиса нормализации.
// Цена, остатки и статус намеренно не передаются: сервису они не нужны
// и опираться на них он не должен.
type Request struct {
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	NameRaw     string `json:"name_raw"`
	CategoryRaw string `json:"category_raw"`
}

// Result результат нормализации одной позиции: от сервиса либо
// локальный fallback. Поля никогда не nil — "неизвестно" кодируется
// пустой строкой, категория либо пустая, либо из словаря портала.
type Result struct {
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
}
