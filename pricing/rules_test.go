package pricing

import "testing"

func TestDetectKeywordRules(t *testing.T) {
	d := NewDetector()
	cases := []struct {
		category string
		name     string
		want     string
	}{
		{"Хранение данных (СХД)", "Samsung SSD 870 EVO 1TB", "ssd"},
		{"Хранение данных (СХД)", "Seagate Barracuda 2TB SATA", "hdd"},
		{"Хранение данных (СХД)", "WD Gold 8TB", "hdd"}, // дефолт категории
		{"Компоненты ПК/Серверов", "Kingston DDR4 SODIMM 16GB", "ram"},
		{"Компоненты ПК/Серверов", "Intel Xeon Silver 4310", "cpu"},
		{"Компоненты ПК/Серверов", "Gigabyte GeForce RTX 4070", "gpu"},
		{"Сетевое оборудование", "Cisco Catalyst 9200L", "network_switch"},
		{"Сетевое оборудование", "SFP+ 10G LR модуль", "sfp_module"},
		{"Ноутбуки", "HP ProBook 450 G10", "laptop"},
		{"Мониторы", "Samsung S27A600", "monitor"},
	}
	for _, c := range cases {
		if got := d.Detect(c.category, c.name); got != c.want {
			t.Errorf("Detect(%q, %q) = %q, want %q", c.category, c.name, got, c.want)
		}
	}
}

func TestDetectSSDBeatsHDDOnAmbiguousName(t *testing.T) {
	d := NewDetector()
	// "SATA SSD" — оба набора ключевых слов могли бы сработать, правила
	// применяются сверху вниз
	if got := d.Detect("Хранение данных (СХД)", "Kingston A400 SATA SSD 480GB"); got != "ssd" {
		t.Errorf("got %q, want ssd", got)
	}
}

func TestDetectCyrillicStemMatch(t *testing.T) {
	d := NewDetector()
	// "сканеры" во множественном числе должно совпасть с "сканер"
	if got := d.Detect("Принтеры/Сканеры", "Планшетные сканеры Epson"); got != "scanner" {
		t.Errorf("got %q, want scanner", got)
	}
}

func TestDetectUnknownCategory(t *testing.T) {
	d := NewDetector()
	if got := d.Detect("", "Нечто без категории"); got != "default" {
		t.Errorf("got %q, want default", got)
	}
}

func TestStemmerPluralMatchesSingular(t *testing.T) {
	s := NewRussianStemmer()
	if s.Stem("проекторы") != s.Stem("проектор") {
		t.Errorf("stems differ: %q vs %q", s.Stem("проекторы"), s.Stem("проектор"))
	}
}

func TestStemmerCacheStable(t *testing.T) {
	s := NewRussianStemmer()
	first := s.Stem("Коммутаторы")
	for i := 0; i < 5; i++ {
		if got := s.Stem("коммутаторы"); got != first {
			t.Fatalf("got %q, want %q", got, first)
		}
	}
}

func TestStemTokensSplitsOnPunctuation(t *testing.T) {
	s := NewRussianStemmer()
	tokens := s.StemTokens("Мониторы, проекторы/экраны (офис)")
	if len(tokens) != 4 {
		t.Fatalf("got %d tokens: %v", len(tokens), tokens)
	}
}
