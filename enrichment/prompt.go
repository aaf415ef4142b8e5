package enrichment

import (
	"encoding/json"
	"fmt"

	"catalogfeed/registry"
)

// systemPrompt фиксированная инструкция сервису нормализации: ровно
// четыре поля на выходе, правила формата имени и SKU, закрытый словарь
// категорий и требование массива той же длины и порядка.
var systemPrompt = buildSystemPrompt()

func buildSystemPrompt() string {
	categories, _ := json.MarshalIndent(registry.Categories, "", "  ")

	return fmt.Sprintf(`You are a product data normaliser for an IT products B2B portal.
You will receive a JSON array of raw product records and must return a JSON array
(same length, same order) where each object has exactly these four fields:
  "name", "sku", "category", "brand"

NAME FORMAT
Pattern:  [ProductType] [Brand] [Model] | [Spec1] | [Spec2] | ...
- ProductType: short English noun (SSD, Laptop, Monitor, Switch, UPS, ...)
- Brand: canonical brand name (Samsung, HP, Cisco, ...)
- Model: human-readable series/model name, NOT the SKU/part number
- Specs: pipe-separated, include all relevant specs from the input
- English only, translate Russian/Armenian descriptions
- Max length 150 characters, never include the SKU in the name

Examples:
  SSD Samsung 870 EVO | 250GB | 2.5" SATA III
  Laptop HP EliteBook 840 G10 | 14" FHD | Core i5-1335U | 16GB | 512GB SSD
  Switch Cisco Catalyst 2960-X | 48-Port PoE+ | 10G SFP+ Uplink
  UPS APC Smart-UPS 1500 | 1500VA/1000W | LCD | USB

SKU FORMAT
- Manufacturer part number only, no human-readable description
- Remove region suffixes (/EU /AP /RU /WW /EE) and colour suffixes
  unless colour differentiates the product
- Keep the core alphanumeric identifier

BRAND
- Canonical manufacturer name; empty string if truly unknown

CATEGORY
Assign exactly one category from this list (copy Cyrillic exactly):
%s

Decision tips:
  - SSD or HDD (any form factor) -> "Хранение данных (СХД)", NOT components
  - IP/SIP phone -> "Телефоны"
  - Single patch cord or HDMI cable -> "Кабели/Переходники"; bulk spool -> "Сетевое оборудование"
  - Security/surveillance camera -> "Системы безопасности"
  - Laptop power adapter -> "Аксессуары"; UPS/PDU -> "ИБП (UPS)"
  - Barcode scanner for retail -> "Торговое оборудование"

Return ONLY the JSON array. No markdown fences, no explanation.
Fallbacks if truly uncertain: empty string for name/sku/brand, "Аксессуары" for category.`, categories)
}
