package parser

import (
	"strings"
	"testing"
)

func TestDecodeInputUTF8(t *testing.T) {
	got, err := DecodeInput([]byte("Мониторы,Samsung"))
	if err != nil {
		t.Fatalf("DecodeInput failed: %v", err)
	}
	if got != "Мониторы,Samsung" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeInputStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Source")...)
	got, err := DecodeInput(data)
	if err != nil {
		t.Fatalf("DecodeInput failed: %v", err)
	}
	if got != "Date,Source" {
		t.Errorf("got %q, BOM should be stripped", got)
	}
}

func TestDecodeInputWindows1251(t *testing.T) {
	// "Ноутбук" в cp1251
	data := []byte{0xCD, 0xEE, 0xF3, 0xF2, 0xE1, 0xF3, 0xEA}
	got, err := DecodeInput(data)
	if err != nil {
		t.Fatalf("DecodeInput failed: %v", err)
	}
	if got != "Ноутбук" {
		t.Errorf("got %q, want Ноутбук", got)
	}
}

func TestSplitLinesSkipsHeaderAndBlanks(t *testing.T) {
	text := "Date,Source,Supplier\nrow1\n\nrow2\r\n\nrow3"
	lines := SplitLines(text)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	// Номера строк 1-based относительно файла, пропуски не сдвигают их
	want := []RawLine{
		{Number: 2, Text: "row1"},
		{Number: 4, Text: "row2"},
		{Number: 6, Text: "row3"},
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %+v, want %+v", i, lines[i], w)
		}
	}
}

func TestSplitLinesEmptyBody(t *testing.T) {
	if got := SplitLines("Date,Source\n\n\n"); len(got) != 0 {
		t.Errorf("got %d lines, want 0", len(got))
	}
	if got := SplitLines(strings.TrimSpace("header only")); len(got) != 0 {
		t.Errorf("got %d lines, want 0", len(got))
	}
}
