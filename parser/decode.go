package parser

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeInput приводит сырые байты выгрузки к UTF-8.
//
// Выгрузки приходят либо в UTF-8 (часто с BOM после экспорта из Excel),
// либо в Windows-1251. BOM срезается, невалидный UTF-8 декодируется
// как cp1251.
func DecodeInput(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode input as windows-1251: %w", err)
	}
	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("input is neither valid UTF-8 nor windows-1251")
	}
	return string(decoded), nil
}
