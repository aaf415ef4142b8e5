package pricing

import (
	"log"
	"math"
	"strconv"
	"strings"

	"catalogfeed/registry"
)

// Rates ставки ценообразования, фиксируются один раз на запуск
type Rates struct {
	LocalAMDMargin float64 // наценка для локальных поставщиков с ценами в AMD
	LocalUSDMargin float64 // наценка для локальных поставщиков с ценами в валюте
	VATRate        float64 // НДС при импорте
	BankFeeRate    float64 // комиссия за банковский перевод
	BrokerFeeRate  float64 // комиссия таможенного брокера
}

// Input входные данные расчёта цены одной позиции
type Input struct {
	PriceRaw     string
	Currency     string
	SupplierType string
	Region       string
	Category     string // категория портала из обогащения
	Name         string // нормализованное название из обогащения
	ExchangeRate float64 // AMD за 1 USD
}

// priceStep шаг округления международных цен вверх, в драмах
const priceStep = 50

// Engine движок цен. Чистая функция своих входов: никаких повторов и
// промежуточного состояния, два вызова с одинаковыми входами дают
// одинаковый результат.
type Engine struct {
	rates         Rates
	profiles      map[string]registry.CostProfile
	freight       *registry.FreightTable
	detector      *Detector
	defaultRegion string
}

// NewEngine создает движок цен
func NewEngine(rates Rates, profiles map[string]registry.CostProfile, freight *registry.FreightTable, detector *Detector, defaultRegion string) *Engine {
	return &Engine{
		rates:         rates,
		profiles:      profiles,
		freight:       freight,
		detector:      detector,
		defaultRegion: defaultRegion,
	}
}

// Price вычисляет итоговую цену в драмах (целое, ≥0).
//
// Три ветки:
//   - локальный поставщик, цены в AMD: price × (1+LocalAMDMargin);
//   - локальный поставщик, валютные цены: price × rate × (1+LocalUSDMargin);
//   - международный: модель landed cost — доставка по профилю типа
//     товара и региону, пошлина, брокер, НДС с банковской комиссией,
//     наценка профиля, конвертация, округление вверх до кратных 50.
//
// Невалидная или неположительная цена даёт 0. Нераспознанная
// комбинация поставщик/валюта деградирует к локальной валютной формуле.
func (e *Engine) Price(in Input) int {
	price, err := strconv.ParseFloat(strings.TrimSpace(in.PriceRaw), 64)
	if err != nil || price <= 0 {
		return 0
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))

	var final float64
	switch {
	case in.SupplierType == registry.SupplierInternational:
		final = e.landedCost(price, in) * in.ExchangeRate
		return roundUpTo(final, priceStep)

	case in.SupplierType == registry.SupplierLocal && currency == "AMD":
		final = price * (1 + e.rates.LocalAMDMargin)

	case in.SupplierType == registry.SupplierLocal:
		final = price * in.ExchangeRate * (1 + e.rates.LocalUSDMargin)

	default:
		final = price * in.ExchangeRate * (1 + e.rates.LocalUSDMargin)
	}

	if final < 0 {
		return 0
	}
	return int(math.Round(final))
}

// landedCost считает отпускную цену международной позиции в USD:
// TLC = price + доставка + пошлина + брокер, затем НДС с банковской
// комиссией и наценка профиля
func (e *Engine) landedCost(price float64, in Input) float64 {
	profileKey := e.detector.Detect(in.Category, in.Name)
	profile, ok := e.profiles[profileKey]
	if !ok {
		profile = e.profiles[registry.DefaultProfileKey]
	}

	region := in.Region
	if region == "" || !e.freight.HasRegion(region) {
		region = e.defaultRegion
	}

	var freightCost float64
	customs := false
	mode, rate, ok := e.freight.Resolve(region, profile.PreferredMode)
	if ok {
		customs = rate.Customs
		if rate.RatePerKg > 0 {
			freightCost = profile.WeightKg * rate.RatePerKg
		} else {
			freightCost = profile.VolumeCBM * rate.RatePerCBM
		}
	} else {
		log.Printf("[Pricing] No freight rates for region %q, mode %q — freight cost 0", region, mode)
	}

	var duty float64
	if customs && profile.DutyRate > 0 {
		duty = price * profile.DutyRate
	}

	var brokerFee float64
	if customs {
		brokerFee = (price + freightCost + duty) * e.rates.BrokerFeeRate
	}

	landed := price + freightCost + duty + brokerFee
	return landed * (1 + e.rates.VATRate + e.rates.BankFeeRate) * (1 + profile.Margin)
}

// roundUpTo округляет вверх до ближайшего кратного step
func roundUpTo(v float64, step int) int {
	if v <= 0 {
		return 0
	}
	return int(math.Ceil(v/float64(step))) * step
}
