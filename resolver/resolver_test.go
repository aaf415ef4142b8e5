package resolver

import (
	"testing"

	"catalogfeed/parser"
	"catalogfeed/registry"
)

func newTestResolver() *Resolver {
	suppliers := registry.NewSupplierRegistry("china")
	suppliers.Add(registry.SupplierProfile{
		Name:                 "Compstyle",
		Type:                 registry.SupplierLocal,
		Currency:             "AMD",
		ETA:                  "1-2 дня",
		VisibleCustomerTypes: "все",
	})
	suppliers.Add(registry.SupplierProfile{
		Name:     "DG",
		Type:     registry.SupplierInternational,
		Currency: "USD",
		ETA:      "14-21 дней",
	})
	brands := registry.NewBrandRegistry([]string{"Samsung", "HP", "Kingston"})
	return NewResolver(suppliers, brands, 9)
}

func row(overrides func(*parser.ParsedRow)) *parser.ParsedRow {
	r := &parser.ParsedRow{
		Supplier:    "DG",
		CategoryRaw: "Мониторы",
		BrandRaw:    "Samsung",
		Model:       "LS27A600",
		NameRaw:     "Samsung S27A600 27in",
		PriceRaw:    "220",
		Currency:    "USD",
		StockRaw:    "14",
		MOQRaw:      "NO",
	}
	if overrides != nil {
		overrides(r)
	}
	return r
}

func TestResolveBasic(t *testing.T) {
	rec, skip := newTestResolver().Resolve(row(nil))
	if skip != nil {
		t.Fatalf("unexpected skip: %+v", skip)
	}
	if rec.SupplierType != registry.SupplierInternational {
		t.Errorf("SupplierType = %q", rec.SupplierType)
	}
	if rec.Region != "china" {
		t.Errorf("Region = %q, want default region", rec.Region)
	}
	if rec.AvailableQuantity != 14 || rec.MOQ != 0 {
		t.Errorf("qty/moq = %d/%d", rec.AvailableQuantity, rec.MOQ)
	}
	if rec.StockStatus != StockInStock {
		t.Errorf("StockStatus = %q", rec.StockStatus)
	}
}

func TestResolveSeparatorRow(t *testing.T) {
	r := row(func(p *parser.ParsedRow) {
		p.Model = "PN"
		p.PriceRaw = "0"
	})
	rec, skip := newTestResolver().Resolve(r)
	if rec != nil || skip == nil || skip.Reason != SkipSeparatorRow {
		t.Fatalf("rec=%+v skip=%+v", rec, skip)
	}
}

func TestResolveSeparatorNeedsZeroPrice(t *testing.T) {
	// Model=PN с реальной ценой — обычный товар, не разделитель
	r := row(func(p *parser.ParsedRow) {
		p.Model = "PN"
		p.PriceRaw = "120"
	})
	rec, skip := newTestResolver().Resolve(r)
	if rec == nil || skip != nil {
		t.Fatalf("rec=%+v skip=%+v", rec, skip)
	}
}

func TestResolveZeroStock(t *testing.T) {
	for _, stock := range []string{"0", "", "нет", "-3"} {
		r := row(func(p *parser.ParsedRow) { p.StockRaw = stock })
		rec, skip := newTestResolver().Resolve(r)
		if rec != nil || skip == nil || skip.Reason != SkipZeroStock {
			t.Errorf("stock=%q: rec=%+v skip=%+v", stock, rec, skip)
		}
	}
}

func TestResolveUnknownSupplier(t *testing.T) {
	res := newTestResolver()
	var reported string
	res.UnknownSupplier = func(name string) { reported = name }

	r := row(func(p *parser.ParsedRow) { p.Supplier = "Mystery Co" })
	rec, skip := res.Resolve(r)
	if skip != nil {
		t.Fatalf("unexpected skip: %+v", skip)
	}
	if reported != "Mystery Co" {
		t.Errorf("callback got %q", reported)
	}
	if rec.SupplierType != registry.SupplierInternational {
		t.Errorf("unknown supplier must default to international, got %q", rec.SupplierType)
	}
}

func TestResolveMOQSentinels(t *testing.T) {
	cases := map[string]int{
		"NO": 0, "no": 0, "": 0, "N/A": 0, "-": 0,
		"5": 5, "12.0": 12, "junk": 0, "-4": 0,
	}
	for raw, want := range cases {
		r := row(func(p *parser.ParsedRow) { p.MOQRaw = raw })
		rec, skip := newTestResolver().Resolve(r)
		if skip != nil {
			t.Fatalf("moq=%q: unexpected skip", raw)
		}
		if rec.MOQ != want {
			t.Errorf("moq=%q: got %d, want %d", raw, rec.MOQ, want)
		}
	}
}

func TestResolveStockStatus(t *testing.T) {
	res := newTestResolver()

	// Локальный поставщик всегда in_stock, даже при малом остатке
	r := row(func(p *parser.ParsedRow) {
		p.Supplier = "Compstyle"
		p.StockRaw = "2"
	})
	rec, _ := res.Resolve(r)
	if rec.StockStatus != StockInStock {
		t.Errorf("local low quantity: %q, want in_stock", rec.StockStatus)
	}

	// Международный: 1..lowMax → low_stock
	r = row(func(p *parser.ParsedRow) { p.StockRaw = "9" })
	rec, _ = res.Resolve(r)
	if rec.StockStatus != StockLowStock {
		t.Errorf("international qty 9: %q, want low_stock", rec.StockStatus)
	}

	r = row(func(p *parser.ParsedRow) { p.StockRaw = "10" })
	rec, _ = res.Resolve(r)
	if rec.StockStatus != StockInStock {
		t.Errorf("international qty 10: %q, want in_stock", rec.StockStatus)
	}
}

func TestResolveEmptyCurrencyFallsBackToProfile(t *testing.T) {
	r := row(func(p *parser.ParsedRow) { p.Currency = " " })
	rec, _ := newTestResolver().Resolve(r)
	if rec.Currency != "USD" {
		t.Errorf("Currency = %q, want profile currency USD", rec.Currency)
	}
}
