package resolver

import (
	"strings"
	"unicode"

	"catalogfeed/registry"
)

// ResolveBrand разрешает бренд по приоритетной цепочке:
//  1. колонка Brand совпадает с каноническим брендом (без учёта
//     регистра) — возвращается каноническое написание;
//  2. поиск канонического бренда в имени товара по границам слов,
//     реестр перебирается от длинных названий к коротким;
//  3. непустая колонка Brand как есть, даже если бренд неизвестен;
//  4. эвристика по имени: короткий первый токен (≤3 символов) плюс
//     второй токен с заглавной буквы склеиваются (серии вида "MSI
//     Gaming"), иначе первый токен; пустое имя даёт пустую строку.
func ResolveBrand(brandRaw, name string, brands *registry.BrandRegistry) string {
	brandRaw = strings.TrimSpace(brandRaw)

	brandLower := strings.ToLower(brandRaw)
	for _, kb := range brands.Brands() {
		if strings.ToLower(kb) == brandLower && brandRaw != "" {
			return kb
		}
	}

	nameLower := strings.ToLower(name)
	for _, kb := range brands.Brands() {
		if containsWord(nameLower, strings.ToLower(kb)) {
			return kb
		}
	}

	if brandRaw != "" {
		return brandRaw
	}

	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return ""
	}
	first := tokens[0]
	if len(first) <= 3 && len(tokens) > 1 && startsUpper(tokens[1]) {
		return first + " " + tokens[1]
	}
	return first
}

// containsWord ищет подстроку по границам слов: символы вплотную к
// совпадению не должны быть буквами, цифрами или подчёркиванием
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start
		if !wordRuneBefore(haystack, idx) && !wordRuneAfter(haystack, idx+len(needle)) {
			return true
		}
		start = idx + 1
	}
}

func wordRuneBefore(s string, idx int) bool {
	if idx == 0 {
		return false
	}
	runes := []rune(s[:idx])
	return isWordRune(runes[len(runes)-1])
}

func wordRuneAfter(s string, idx int) bool {
	if idx >= len(s) {
		return false
	}
	for _, r := range s[idx:] {
		return isWordRune(r)
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
