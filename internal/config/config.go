package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config конфигурация запуска конвейера. Собирается один раз на
// старте, дальше передаётся по ссылке и не меняется — никто не читает
// окружение по ходу обработки.
type Config struct {
	// Входные файлы
	RawPath       string `json:"raw_path"`
	SuppliersPath string `json:"suppliers_path"`
	BrandsPath    string `json:"brands_path"`

	// Необязательные переопределения таблиц ценообразования
	CostProfilesPath string `json:"cost_profiles_path"`
	FreightPath      string `json:"freight_path"`

	// Выход
	OutputPath   string `json:"output_path"`
	ErrorLogPath string `json:"error_log_path"`
	DatabasePath string `json:"database_path"` // пусто — без сохранения в БД

	// Ставки ценообразования
	LocalAMDMargin float64 `json:"local_amd_margin"`
	LocalUSDMargin float64 `json:"local_usd_margin"`
	VATRate        float64 `json:"vat_rate"`
	BankFeeRate    float64 `json:"bank_fee_rate"`
	BrokerFeeRate  float64 `json:"broker_fee_rate"`

	// Пороги остатков (только международные поставщики)
	StockLowMax int `json:"stock_low_max"`

	// Регион доставки по умолчанию для международных поставщиков
	DefaultRegion string `json:"default_region"`

	// Сервис нормализации
	AIBaseURL   string        `json:"ai_base_url"`
	AIAPIKey    string        `json:"ai_api_key"`
	AIModel     string        `json:"ai_model"`
	AITimeout   time.Duration `json:"ai_timeout"`
	BatchSize   int           `json:"batch_size"`
	MaxAttempts int           `json:"max_attempts"`
	RetryDelay  time.Duration `json:"retry_delay"`
	BatchDelay  time.Duration `json:"batch_delay"`

	// Курс валют
	RateURL     string        `json:"rate_url"`
	RateHTMLURL string        `json:"rate_html_url"`
	RateTimeout time.Duration `json:"rate_timeout"`

	// Сервер
	Port string `json:"port"`
}

// Load собирает конфигурацию из переменных окружения с дефолтами
func Load() (*Config, error) {
	config := &Config{
		RawPath:       getEnv("FEED_RAW_CSV", "raw_product_export_data.csv"),
		SuppliersPath: getEnv("FEED_SUPPLIERS_CSV", "data/suppliers.csv"),
		BrandsPath:    getEnv("FEED_BRANDS_CSV", "data/brands.csv"),

		CostProfilesPath: getEnv("FEED_COST_PROFILES_JSON", ""),
		FreightPath:      getEnv("FEED_FREIGHT_JSON", ""),

		OutputPath:   getEnv("FEED_OUTPUT_CSV", "output_import.csv"),
		ErrorLogPath: getEnv("FEED_ERROR_LOG_CSV", "parse_errors.csv"),
		DatabasePath: getEnv("FEED_DATABASE_PATH", ""),

		LocalAMDMargin: getEnvFloat("FEED_LOCAL_AMD_MARGIN", 0.05),
		LocalUSDMargin: getEnvFloat("FEED_LOCAL_USD_MARGIN", 0.05),
		VATRate:        getEnvFloat("FEED_VAT_RATE", 0.20),
		BankFeeRate:    getEnvFloat("FEED_BANK_FEE_RATE", 0.005),
		BrokerFeeRate:  getEnvFloat("FEED_BROKER_FEE_RATE", 0.015),

		StockLowMax: getEnvInt("FEED_STOCK_LOW_MAX", 9),

		DefaultRegion: getEnv("FEED_DEFAULT_REGION", "china"),

		AIBaseURL:   getEnv("FEED_AI_BASE_URL", ""),
		AIAPIKey:    getEnv("FEED_AI_API_KEY", ""),
		AIModel:     getEnv("FEED_AI_MODEL", "GLM-4.5-Air"),
		AITimeout:   getEnvDuration("FEED_AI_TIMEOUT", 120*time.Second),
		BatchSize:   getEnvInt("FEED_BATCH_SIZE", 50),
		MaxAttempts: getEnvInt("FEED_MAX_ATTEMPTS", 3),
		RetryDelay:  getEnvDuration("FEED_RETRY_DELAY", time.Second),
		BatchDelay:  getEnvDuration("FEED_BATCH_DELAY", 500*time.Millisecond),

		RateURL:     getEnv("FEED_RATE_URL", ""),
		RateHTMLURL: getEnv("FEED_RATE_HTML_URL", ""),
		RateTimeout: getEnvDuration("FEED_RATE_TIMEOUT", 10*time.Second),

		Port: getEnv("FEED_SERVER_PORT", "9990"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.StockLowMax < 1 {
		return fmt.Errorf("stock_low_max must be at least 1, got %d", c.StockLowMax)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1, got %d", c.BatchSize)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", c.MaxAttempts)
	}
	for name, rate := range map[string]float64{
		"local_amd_margin": c.LocalAMDMargin,
		"local_usd_margin": c.LocalUSDMargin,
		"vat_rate":         c.VATRate,
		"bank_fee_rate":    c.BankFeeRate,
		"broker_fee_rate":  c.BrokerFeeRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %g", name, rate)
		}
	}
	if c.DefaultRegion == "" {
		return fmt.Errorf("default_region must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
