package registry

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// CostProfile ценовой профиль типа товара: усреднённые вес и объём,
// ставка пошлины, предпочитаемый способ доставки и наценка.
type CostProfile struct {
	WeightKg      float64 `json:"weight_kg"`
	VolumeCBM     float64 `json:"volume_cbm"`
	DutyRate      float64 `json:"duty_rate"`
	PreferredMode string  `json:"preferred_ship_mode"`
	Margin        float64 `json:"margin"`
}

// DefaultProfileKey ключ глобального профиля по умолчанию
const DefaultProfileKey = "default"

// DefaultCostProfiles возвращает встроенную таблицу ценовых профилей.
// Вес и объём — усреднённые по типу товара, пошлины — средние по
// товарной группе.
func DefaultCostProfiles() map[string]CostProfile {
	return map[string]CostProfile{
		"ssd":             {WeightKg: 0.1, VolumeCBM: 0.0002, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.10},
		"hdd":             {WeightKg: 0.7, VolumeCBM: 0.0008, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.10},
		"ram":             {WeightKg: 0.05, VolumeCBM: 0.0001, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.12},
		"cpu":             {WeightKg: 0.3, VolumeCBM: 0.0005, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.12},
		"gpu":             {WeightKg: 1.5, VolumeCBM: 0.006, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.12},
		"motherboard":     {WeightKg: 1.0, VolumeCBM: 0.005, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.12},
		"psu":             {WeightKg: 2.0, VolumeCBM: 0.006, DutyRate: 0.05, PreferredMode: ModeSea, Margin: 0.15},
		"component":       {WeightKg: 0.8, VolumeCBM: 0.003, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.12},
		"laptop":          {WeightKg: 2.5, VolumeCBM: 0.012, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.08},
		"desktop":         {WeightKg: 8.0, VolumeCBM: 0.045, DutyRate: 0, PreferredMode: ModeGround, Margin: 0.10},
		"server":          {WeightKg: 20.0, VolumeCBM: 0.09, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.12},
		"monitor":         {WeightKg: 6.0, VolumeCBM: 0.06, DutyRate: 0.05, PreferredMode: ModeGround, Margin: 0.12},
		"printer":         {WeightKg: 9.0, VolumeCBM: 0.07, DutyRate: 0.05, PreferredMode: ModeGround, Margin: 0.15},
		"mfp":             {WeightKg: 25.0, VolumeCBM: 0.15, DutyRate: 0.05, PreferredMode: ModeSea, Margin: 0.15},
		"scanner":         {WeightKg: 3.0, VolumeCBM: 0.02, DutyRate: 0.05, PreferredMode: ModeAir, Margin: 0.15},
		"projector":       {WeightKg: 4.0, VolumeCBM: 0.025, DutyRate: 0.05, PreferredMode: ModeAir, Margin: 0.15},
		"ups":             {WeightKg: 15.0, VolumeCBM: 0.05, DutyRate: 0.05, PreferredMode: ModeSea, Margin: 0.15},
		"phone":           {WeightKg: 0.4, VolumeCBM: 0.001, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.08},
		"tablet":          {WeightKg: 0.8, VolumeCBM: 0.003, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.08},
		"smart_gadget":    {WeightKg: 0.3, VolumeCBM: 0.001, DutyRate: 0.05, PreferredMode: ModeAir, Margin: 0.18},
		"network_switch":  {WeightKg: 4.0, VolumeCBM: 0.02, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.15},
		"network_device":  {WeightKg: 1.5, VolumeCBM: 0.008, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.15},
		"sfp_module":      {WeightKg: 0.05, VolumeCBM: 0.0001, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.18},
		"cable":           {WeightKg: 0.3, VolumeCBM: 0.001, DutyRate: 0.10, PreferredMode: ModeSea, Margin: 0.30},
		"accessory":       {WeightKg: 0.5, VolumeCBM: 0.003, DutyRate: 0.10, PreferredMode: ModeSea, Margin: 0.25},
		"security_camera": {WeightKg: 0.8, VolumeCBM: 0.004, DutyRate: 0.05, PreferredMode: ModeAir, Margin: 0.18},
		"nvr":             {WeightKg: 3.0, VolumeCBM: 0.015, DutyRate: 0.05, PreferredMode: ModeAir, Margin: 0.15},
		"pos_terminal":    {WeightKg: 1.2, VolumeCBM: 0.005, DutyRate: 0.05, PreferredMode: ModeAir, Margin: 0.18},
		"barcode_scanner": {WeightKg: 0.6, VolumeCBM: 0.003, DutyRate: 0.05, PreferredMode: ModeAir, Margin: 0.18},
		"tv":              {WeightKg: 15.0, VolumeCBM: 0.12, DutyRate: 0.10, PreferredMode: ModeSea, Margin: 0.15},
		"av_equipment":    {WeightKg: 2.0, VolumeCBM: 0.01, DutyRate: 0.10, PreferredMode: ModeAir, Margin: 0.18},
		"software":        {WeightKg: 0, VolumeCBM: 0, DutyRate: 0, PreferredMode: ModeAir, Margin: 0.10},
		DefaultProfileKey: {WeightKg: 1.0, VolumeCBM: 0.005, DutyRate: 0.05, PreferredMode: ModeAir, Margin: 0.15},
	}
}

// LoadCostProfilesJSON загружает профили из JSON файла, дополняя и
// перекрывая встроенные значения по ключу
func LoadCostProfilesJSON(path string) (map[string]CostProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cost profiles: %w", err)
	}
	var override map[string]CostProfile
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse cost profiles: %w", err)
	}

	profiles := DefaultCostProfiles()
	for key, p := range override {
		profiles[key] = p
	}
	log.Printf("[Registry] Loaded %d cost profile override(s) from %s", len(override), path)
	return profiles, nil
}
