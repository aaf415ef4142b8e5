package enrichment

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Параметры повторов по умолчанию
const (
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = time.Second
	MaxRetryDelay        = 30 * time.Second
)

// RetryConfig конфигурация повторов при ошибках сервиса нормализации
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64 // множитель экспоненциальной задержки
}

// DefaultRetryConfig возвращает конфигурацию повторов по умолчанию
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  DefaultRetryAttempts,
		InitialDelay: DefaultRetryDelay,
		MaxDelay:     MaxRetryDelay,
		Multiplier:   2.0,
	}
}

// RetryableFunc операция, которую можно повторить при ошибке
type RetryableFunc func() error

// Retry выполняет операцию с повторами и экспоненциальной задержкой.
// Транспортные ошибки и невалидные ответы равнозначны: и то и другое
// повторяется до исчерпания попыток.
func Retry(ctx context.Context, fn RetryableFunc, config RetryConfig, operation string) error {
	var lastErr error
	delay := config.InitialDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				log.Printf("[Enrichment] %s succeeded after %d attempts", operation, attempt)
			}
			return nil
		}
		lastErr = err

		if attempt < config.MaxAttempts {
			log.Printf("[Enrichment] %s failed (attempt %d/%d), retrying in %v: %v",
				operation, attempt, config.MaxAttempts, delay, err)
			select {
			case <-ctx.Done():
				return fmt.Errorf("retry cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * config.Multiplier)
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
		} else {
			log.Printf("[Enrichment] %s failed after %d attempts: %v", operation, config.MaxAttempts, err)
		}
	}
	return lastErr
}
