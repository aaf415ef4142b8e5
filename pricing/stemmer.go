package pricing

import (
	"strings"
	"sync"

	"github.com/kljensen/snowball"
)

// RussianStemmer стеммер русских слов на алгоритме Snowball с кэшем.
// Нужен детектору типов товара: ключевые слова вида "проектор" должны
// находить и "проекторы", и "проектора" в названиях.
type RussianStemmer struct {
	cache map[string]string
	mu    sync.RWMutex
}

// NewRussianStemmer создает стеммер с кэшем
func NewRussianStemmer() *RussianStemmer {
	return &RussianStemmer{cache: make(map[string]string)}
}

// Stem возвращает основу слова ("проекторы" -> "проектор").
// Нестеммируемые слова возвращаются в нижнем регистре как есть.
func (s *RussianStemmer) Stem(word string) string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return ""
	}

	s.mu.RLock()
	cached, ok := s.cache[word]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	stemmed, err := snowball.Stem(word, "russian", false)
	if err != nil || stemmed == "" {
		stemmed = word
	}

	s.mu.Lock()
	s.cache[word] = stemmed
	s.mu.Unlock()
	return stemmed
}

// StemTokens возвращает основы всех токенов строки
func (s *RussianStemmer) StemTokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '(' || r == ')' || r == ';' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		out = append(out, s.Stem(f))
	}
	return out
}
