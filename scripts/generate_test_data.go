// Генератор тестовой сырой выгрузки: валидные строки, строки с
// запятыми в названии, строки-разделители, нулевые остатки и
// неизвестные поставщики — всё, что встречается в реальных файлах.
//
// Запуск из корня репозитория:
//
//	go run scripts/generate_test_data.go -rows 200 -out testdata_raw.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

var suppliers = []string{"Compstyle LLC", "DG", "Shenzhen Star Trade", "MegaParts FZE"}

var brands = []string{"Samsung", "HP", "Cisco", "Kingston", "Seagate", "APC", "Epson", "Dell"}

var categories = []string{
	"Ноутбуки", "Мониторы", "Хранение данных (СХД)",
	"Сетевое оборудование", "ИБП (UPS)", "Кабели/Переходники",
}

func main() {
	rows := flag.Int("rows", 100, "количество строк данных")
	out := flag.String("out", "testdata_raw.csv", "путь к выходному файлу")
	seed := flag.Int64("seed", 0, "seed генератора")
	flag.Parse()

	gofakeit.Seed(*seed)

	var b strings.Builder
	b.WriteString("Date,Source,Supplier,Category,Brand,Model,Name,Price,Currency,Stock,MOQ,Notes\n")

	for i := 0; i < *rows; i++ {
		switch {
		case i%17 == 0:
			// Строка-разделитель категории
			b.WriteString(fmt.Sprintf("2025-06-01,price-list,%s,%s,,PN,,0,USD,0,NO,\n",
				pick(suppliers), pick(categories)))
		case i%11 == 0:
			// Название с запятыми — парсер должен выровнять по валюте
			b.WriteString(fmt.Sprintf("2025-06-01,price-list,%s,%s,%s,%s,%s, 16GB, DDR4, SODIMM,%d,USD,%d,NO,\n",
				pick(suppliers), pick(categories), pick(brands),
				gofakeit.LetterN(6), gofakeit.ProductName(),
				gofakeit.Number(20, 900), gofakeit.Number(1, 120)))
		case i%13 == 0:
			// Нулевой остаток — должен отфильтроваться
			b.WriteString(fmt.Sprintf("2025-06-01,price-list,%s,%s,%s,%s,%s,%d,USD,0,NO,\n",
				pick(suppliers), pick(categories), pick(brands),
				gofakeit.LetterN(6), gofakeit.ProductName(), gofakeit.Number(20, 900)))
		case i%19 == 0:
			// Неизвестный поставщик
			b.WriteString(fmt.Sprintf("2025-06-01,price-list,%s,%s,%s,%s,%s,%d,USD,%d,NO,\n",
				gofakeit.Company(), pick(categories), pick(brands),
				gofakeit.LetterN(6), gofakeit.ProductName(),
				gofakeit.Number(20, 900), gofakeit.Number(1, 120)))
		default:
			b.WriteString(fmt.Sprintf("2025-06-01,price-list,%s,%s,%s,%s,%s,%d,%s,%d,%s,\n",
				pick(suppliers), pick(categories), pick(brands),
				gofakeit.LetterN(6), gofakeit.ProductName(),
				gofakeit.Number(20, 900),
				pick([]string{"USD", "AMD", "EUR"}),
				gofakeit.Number(1, 120),
				pick([]string{"NO", "N/A", "-", "5", "10"})))
		}
	}

	if err := os.WriteFile(*out, []byte(b.String()), 0644); err != nil {
		log.Fatalf("Failed to write test data: %v", err)
	}
	log.Printf("Wrote %d row(s) to %s", *rows, *out)
}

func pick(items []string) string {
	return items[gofakeit.Number(0, len(items)-1)]
}
