package pricing

import (
	"strings"
	"unicode"

	"catalogfeed/registry"
)

// Rule одно правило определения типа товара: категория портала,
// ключевые слова в нормализованном названии и ключ ценового профиля.
// Правила применяются сверху вниз, выигрывает первое совпавшее.
type Rule struct {
	Category string
	Keywords []string
	Profile  string
}

// defaultRules встроенная таблица правил. Ключевые слова нужны только
// составным категориям (компоненты, принтеры, сеть, хранение и т.п.) —
// категория сама по себе там неоднозначна.
func defaultRules() []Rule {
	return []Rule{
		// Хранение данных: SSD раньше HDD — "SATA" встречается у обоих
		{Category: "Хранение данных (СХД)", Keywords: []string{"ssd", "nvme", "m.2", "flash", "microsd", "usb"}, Profile: "ssd"},
		{Category: "Хранение данных (СХД)", Keywords: []string{"hdd", "nas", "ironwolf", "barracuda", "skyhawk"}, Profile: "hdd"},

		// Компоненты ПК/серверов
		{Category: "Компоненты ПК/Серверов", Keywords: []string{"ram", "ddr", "dimm", "sodimm", "память", "memory"}, Profile: "ram"},
		{Category: "Компоненты ПК/Серверов", Keywords: []string{"processor", "cpu", "xeon", "ryzen", "core i", "процессор"}, Profile: "cpu"},
		{Category: "Компоненты ПК/Серверов", Keywords: []string{"gpu", "geforce", "radeon", "rtx", "gtx", "видеокарта"}, Profile: "gpu"},
		{Category: "Компоненты ПК/Серверов", Keywords: []string{"motherboard", "материнская"}, Profile: "motherboard"},
		{Category: "Компоненты ПК/Серверов", Keywords: []string{"psu", "power supply", "блок питания"}, Profile: "psu"},

		// Принтеры/сканеры
		{Category: "Принтеры/Сканеры", Keywords: []string{"mfp", "мфу", "imagerunner"}, Profile: "mfp"},
		{Category: "Принтеры/Сканеры", Keywords: []string{"scanner", "сканер"}, Profile: "scanner"},

		// Сетевое оборудование
		{Category: "Сетевое оборудование", Keywords: []string{"sfp", "qsfp", "модуль"}, Profile: "sfp_module"},
		{Category: "Сетевое оборудование", Keywords: []string{"switch", "коммутатор", "catalyst"}, Profile: "network_switch"},

		// ТВ/Аудио/Фото/Видео
		{Category: "ТВ/Аудио/Фото/Видео техника", Keywords: []string{"tv", "телевизор"}, Profile: "tv"},

		// Торговое оборудование
		{Category: "Торговое оборудование", Keywords: []string{"barcode", "штрих"}, Profile: "barcode_scanner"},

		// Системы безопасности
		{Category: "Системы безопасности", Keywords: []string{"nvr", "dvr", "видеорегистратор"}, Profile: "nvr"},
	}
}

// categoryDefaults профиль категории, когда ни одно ключевое слово
// не совпало
var categoryDefaults = map[string]string{
	"Ноутбуки":                    "laptop",
	"Компьютеры":                  "desktop",
	"Серверы":                     "server",
	"Телефоны":                    "phone",
	"Планшеты":                    "tablet",
	"Компоненты ПК/Серверов":      "component",
	"Мониторы":                    "monitor",
	"Принтеры/Сканеры":            "printer",
	"Проекторы и принадлежности":  "projector",
	"ИБП (UPS)":                   "ups",
	"Аксессуары":                  "accessory",
	"Хранение данных (СХД)":       "hdd",
	"Программное обеспечение":     "software",
	"Сетевое оборудование":        "network_device",
	"Кабели/Переходники":          "cable",
	"Смарт-Гаджеты":               "smart_gadget",
	"ТВ/Аудио/Фото/Видео техника": "av_equipment",
	"Торговое оборудование":       "pos_terminal",
	"Системы безопасности":        "security_camera",
}

// Detector определяет ключ ценового профиля по категории портала и
// нормализованному названию товара
type Detector struct {
	rules   []Rule
	stemmer *RussianStemmer
}

// NewDetector создает детектор со встроенной таблицей правил
func NewDetector() *Detector {
	return &Detector{rules: defaultRules(), stemmer: NewRussianStemmer()}
}

// NewDetectorWithRules создает детектор с внешней таблицей правил
func NewDetectorWithRules(rules []Rule) *Detector {
	return &Detector{rules: rules, stemmer: NewRussianStemmer()}
}

// Detect возвращает ключ профиля: первое совпавшее правило, иначе
// дефолт категории, иначе глобальный дефолт
func (d *Detector) Detect(category, name string) string {
	nameLower := strings.ToLower(name)
	stems := d.stemmer.StemTokens(name)

	for _, rule := range d.rules {
		if rule.Category != "" && rule.Category != category {
			continue
		}
		for _, kw := range rule.Keywords {
			if d.keywordMatches(nameLower, stems, kw) {
				return rule.Profile
			}
		}
	}

	if profile, ok := categoryDefaults[category]; ok {
		return profile
	}
	return registry.DefaultProfileKey
}

// keywordMatches проверяет ключевое слово: латинские — подстрокой,
// кириллические — сравнением основ слов, чтобы падежи и число не
// ломали совпадение
func (d *Detector) keywordMatches(nameLower string, stems []string, keyword string) bool {
	keyword = strings.ToLower(keyword)
	if strings.Contains(nameLower, keyword) {
		return true
	}
	if !hasCyrillic(keyword) {
		return false
	}
	kwStem := d.stemmer.Stem(keyword)
	for _, s := range stems {
		if s == kwStem {
			return true
		}
	}
	return false
}

func hasCyrillic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}
