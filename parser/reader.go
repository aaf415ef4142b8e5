package parser

import "strings"

// SplitLines разбивает декодированную выгрузку на строки данных.
//
// Первая строка файла — заголовок, она пропускается. Пустые строки
// пропускаются без следа: номера строк остаются 1-based относительно
// файла, чтобы лог ошибок указывал на реальную позицию.
func SplitLines(text string) []RawLine {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var out []RawLine
	for i, line := range lines {
		if i == 0 {
			continue // заголовок
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, RawLine{Number: i + 1, Text: line})
	}
	return out
}
