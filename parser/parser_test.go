package parser

import "testing"

func TestParseExactColumns(t *testing.T) {
	line := RawLine{
		Number: 2,
		Text:   "2025-06-01,price-list,Compstyle,Мониторы,Samsung,LS27A600,Samsung S27A600 27in,220,USD,14,NO,",
	}
	row, fail := Parse(line)
	if fail != nil {
		t.Fatalf("Parse failed: %+v", fail)
	}
	if row.Supplier != "Compstyle" {
		t.Errorf("Supplier = %q, want Compstyle", row.Supplier)
	}
	if row.NameRaw != "Samsung S27A600 27in" {
		t.Errorf("NameRaw = %q", row.NameRaw)
	}
	if row.PriceRaw != "220" || row.Currency != "USD" {
		t.Errorf("Price/Currency = %q/%q", row.PriceRaw, row.Currency)
	}
	if row.StockRaw != "14" || row.MOQRaw != "NO" {
		t.Errorf("Stock/MOQ = %q/%q", row.StockRaw, row.MOQRaw)
	}
}

func TestParseCurrencyAnchorRecovery(t *testing.T) {
	// Запятые внутри Name: 14 полей вместо 12
	line := RawLine{
		Number: 7,
		Text:   "2025-06-01,price-list,DG,Комплектующие,Kingston,KVR32S22S8,Kingston SODIMM, 16GB, DDR4,45,USD,120,10,остаток на складе",
	}
	row, fail := Parse(line)
	if fail != nil {
		t.Fatalf("Parse failed: %+v", fail)
	}
	if row.NameRaw != "Kingston SODIMM, 16GB, DDR4" {
		t.Errorf("NameRaw = %q, want name reassembled with commas", row.NameRaw)
	}
	if row.PriceRaw != "45" {
		t.Errorf("PriceRaw = %q, want 45", row.PriceRaw)
	}
	if row.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", row.Currency)
	}
	if row.StockRaw != "120" || row.MOQRaw != "10" {
		t.Errorf("Stock/MOQ = %q/%q", row.StockRaw, row.MOQRaw)
	}
	if row.Notes != "остаток на складе" {
		t.Errorf("Notes = %q", row.Notes)
	}
}

func TestParseAnchorPicksRightmostCurrency(t *testing.T) {
	// Код валюты в Name не должен перехватить якорь: скан справа налево
	line := RawLine{
		Number: 3,
		Text:   "d,s,Sup,Cat,Brand,M1,Cable USD, to EUR adapter,12,EUR,4,NO,",
	}
	row, fail := Parse(line)
	if fail != nil {
		t.Fatalf("Parse failed: %+v", fail)
	}
	if row.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR (rightmost anchor)", row.Currency)
	}
	if row.NameRaw != "Cable USD, to EUR adapter" {
		t.Errorf("NameRaw = %q", row.NameRaw)
	}
}

func TestParseTooFewColumns(t *testing.T) {
	line := RawLine{Number: 5, Text: "only,three,fields"}
	row, fail := Parse(line)
	if row != nil || fail == nil {
		t.Fatalf("expected failure, got row=%+v", row)
	}
	if fail.LineNo != 5 || fail.Reason != ReasonParseFailed {
		t.Errorf("failure = %+v", fail)
	}
	if fail.Raw != line.Text {
		t.Errorf("Raw = %q, want original line preserved", fail.Raw)
	}
}

func TestParseNoCurrencyAnchor(t *testing.T) {
	line := RawLine{
		Number: 9,
		Text:   "a,b,c,d,e,f,name, extra, parts,100,XXX,5,NO,note",
	}
	row, fail := Parse(line)
	if row != nil || fail == nil {
		t.Fatal("expected failure when no known currency present")
	}
}

func TestParseTooFewAfterAnchor(t *testing.T) {
	// После валюты только одно поле — Stock без MOQ
	line := RawLine{
		Number: 4,
		Text:   "a,b,c,d,e,f,n1, n2, n3, n4,100,USD,5",
	}
	row, fail := Parse(line)
	if row != nil || fail == nil {
		t.Fatal("expected failure with fewer than two fields after currency")
	}
}

func TestParseAnchorCaseInsensitive(t *testing.T) {
	line := RawLine{
		Number: 6,
		Text:   "a,b,c,d,e,f,name, part,100, usd ,5,NO,",
	}
	row, fail := Parse(line)
	if fail != nil {
		t.Fatalf("Parse failed: %+v", fail)
	}
	if row.Currency != " usd " {
		t.Errorf("Currency = %q, want raw token preserved", row.Currency)
	}
}
