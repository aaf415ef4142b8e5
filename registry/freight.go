package registry

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// Способы доставки
const (
	ModeAir    = "air"
	ModeGround = "ground"
	ModeSea    = "sea"
)

// FreightRate тариф доставки для одного способа в одном регионе.
// Задан либо тариф за килограмм, либо за кубометр (RatePerKg имеет
// приоритет, если заданы оба).
type FreightRate struct {
	RatePerKg  float64 `json:"rate_per_kg"`
	RatePerCBM float64 `json:"rate_per_cbm"`
	Customs    bool    `json:"customs_applicable"`
}

// FreightTable тарифы доставки: регион → способ → тариф.
// Регион может не поддерживать какой-то способ — движок цен подставляет
// альтернативный способ этого региона.
type FreightTable struct {
	regions map[string]map[string]FreightRate
}

// NewFreightTable создает таблицу тарифов из готовой карты
func NewFreightTable(regions map[string]map[string]FreightRate) *FreightTable {
	return &FreightTable{regions: regions}
}

// DefaultFreightTable возвращает встроенные тарифы (USD за кг/кубометр)
func DefaultFreightTable() *FreightTable {
	return NewFreightTable(map[string]map[string]FreightRate{
		"china": {
			ModeAir: {RatePerKg: 8.5, Customs: true},
			ModeSea: {RatePerCBM: 180, Customs: true},
		},
		"emirates": {
			ModeAir:    {RatePerKg: 6.0, Customs: true},
			ModeGround: {RatePerKg: 2.2, Customs: true},
		},
		"europe": {
			ModeAir:    {RatePerKg: 7.0, Customs: true},
			ModeGround: {RatePerKg: 3.0, Customs: true},
		},
		"usa": {
			ModeAir: {RatePerKg: 9.5, Customs: true},
			ModeSea: {RatePerCBM: 220, Customs: true},
		},
	})
}

// HasRegion проверяет наличие региона в таблице
func (t *FreightTable) HasRegion(region string) bool {
	_, ok := t.regions[strings.ToLower(region)]
	return ok
}

// Resolve возвращает тариф для региона и предпочитаемого способа.
// Если способ в регионе не поддерживается, подставляется альтернативный
// поддерживаемый способ региона (air ↔ ground/sea).
func (t *FreightTable) Resolve(region, preferred string) (string, FreightRate, bool) {
	modes, ok := t.regions[strings.ToLower(region)]
	if !ok || len(modes) == 0 {
		return "", FreightRate{}, false
	}
	if rate, ok := modes[preferred]; ok {
		return preferred, rate, true
	}
	// Альтернатива: для air пробуем наземные способы, для
	// наземных — air, затем что осталось.
	order := []string{ModeGround, ModeSea, ModeAir}
	if preferred == ModeAir {
		order = []string{ModeGround, ModeSea}
	}
	for _, mode := range order {
		if rate, ok := modes[mode]; ok {
			return mode, rate, true
		}
	}
	return "", FreightRate{}, false
}

// LoadFreightJSON загружает таблицу тарифов из JSON файла, перекрывая
// встроенные значения целиком
func LoadFreightJSON(path string) (*FreightTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read freight table: %w", err)
	}
	var regions map[string]map[string]FreightRate
	if err := json.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("failed to parse freight table: %w", err)
	}
	log.Printf("[Registry] Loaded freight rates for %d region(s) from %s", len(regions), path)
	return NewFreightTable(regions), nil
}
