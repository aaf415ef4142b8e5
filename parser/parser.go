package parser

import (
	"encoding/csv"
	"strings"
)

// Колонки сырой выгрузки. Шесть фиксированных слева, Name переменной
// ширины, пять фиксированных справа.
const expectedColumns = 12

// KnownCurrencies валюты, которые могут встретиться в выгрузке.
// Поле Currency служит якорем при восстановлении сбитых строк.
var KnownCurrencies = map[string]bool{
	"USD": true,
	"AMD": true,
	"EUR": true,
	"RUB": true,
}

// RawLine одна строка сырой выгрузки с её позицией в файле (1-based)
type RawLine struct {
	Number int
	Text   string
}

// ParsedRow строка выгрузки, разобранная по именованным полям
type ParsedRow struct {
	Date        string
	Source      string
	Supplier    string
	CategoryRaw string
	BrandRaw    string
	Model       string
	NameRaw     string
	PriceRaw    string
	Currency    string
	StockRaw    string
	MOQRaw      string
	Notes       string
}

// ParseFailure строка, которую не удалось надёжно разобрать
type ParseFailure struct {
	LineNo int
	Raw    string
	Reason string
}

// ReasonParseFailed единственная причина отказа парсера
const ReasonParseFailed = "parse_failed"

// Parse разбирает одну строку выгрузки.
//
// Стратегия: если количество полей совпадает со схемой — прямое
// позиционное сопоставление. Если полей больше (запятые внутри Name),
// якоримся на поле Currency (всегда известный трёхбуквенный код),
// сканируя справа налево, и восстанавливаем Name из всего, что осталось
// между фиксированными левыми колонками и якорем.
//
// Известное допущение: код валюты не встречается внутри свободного
// текста Name. Если встретится — якорь сработает не там.
func Parse(line RawLine) (*ParsedRow, *ParseFailure) {
	parts, err := tokenize(line.Text)
	if err != nil {
		return nil, failure(line)
	}

	if len(parts) == expectedColumns {
		return zipRow(parts), nil
	}

	if len(parts) < expectedColumns {
		// Полей меньше схемы — восстановление невозможно
		return nil, failure(line)
	}

	// Полей больше схемы: ищем якорь Currency справа налево,
	// не заходя в фиксированные левые колонки (индексы 0..5).
	currencyIdx := -1
	for i := len(parts) - 1; i > 5; i-- {
		if KnownCurrencies[strings.ToUpper(strings.TrimSpace(parts[i]))] {
			currencyIdx = i
			break
		}
	}
	if currencyIdx == -1 {
		return nil, failure(line)
	}

	// Справа от валюты: Stock, MOQ, Notes. Первые два обязательны.
	right := parts[currencyIdx+1:]
	if len(right) < 2 {
		return nil, failure(line)
	}
	notes := ""
	if len(right) > 2 {
		notes = right[2]
	}

	// Цена стоит сразу слева от валюты, Name — всё между
	// фиксированными колонками и ценой.
	nameEnd := currencyIdx - 1
	if nameEnd < 6 {
		nameEnd = 6
	}
	name := strings.TrimSpace(strings.Join(parts[6:nameEnd], ","))

	return &ParsedRow{
		Date:        parts[0],
		Source:      parts[1],
		Supplier:    parts[2],
		CategoryRaw: parts[3],
		BrandRaw:    parts[4],
		Model:       parts[5],
		NameRaw:     name,
		PriceRaw:    parts[currencyIdx-1],
		Currency:    parts[currencyIdx],
		StockRaw:    right[0],
		MOQRaw:      right[1],
		Notes:       notes,
	}, nil
}

// tokenize разбивает строку по запятым с учётом кавычек
func tokenize(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.Read()
}

// zipRow собирает ParsedRow из ровно 12 полей
func zipRow(parts []string) *ParsedRow {
	return &ParsedRow{
		Date:        parts[0],
		Source:      parts[1],
		Supplier:    parts[2],
		CategoryRaw: parts[3],
		BrandRaw:    parts[4],
		Model:       parts[5],
		NameRaw:     strings.TrimSpace(parts[6]),
		PriceRaw:    parts[7],
		Currency:    parts[8],
		StockRaw:    parts[9],
		MOQRaw:      parts[10],
		Notes:       parts[11],
	}
}

func failure(line RawLine) *ParseFailure {
	return &ParseFailure{LineNo: line.Number, Raw: line.Text, Reason: ReasonParseFailed}
}
