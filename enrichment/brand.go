package enrichment

import (
	"regexp"
	"strings"
)

// capacityPattern значение объёма, по ошибке попавшее в колонку
// бренда ("256GB", "1 TB" и т.п.) — известный дефект ручного ввода
var capacityPattern = regexp.MustCompile(`(?i)^\d+(\.\d+)?\s*(GB|MB|TB|KB)$`)

// ResolveBrand финальное слияние бренда: локально разрешённое значение
// против значения от сервиса. Чистая функция, без мутации записей.
// Если локальный бренд похож на объём памяти, предпочитается непустой
// бренд от сервиса; иначе остаётся локальный.
func ResolveBrand(local, service string) string {
	local = strings.TrimSpace(local)
	service = strings.TrimSpace(service)

	if capacityPattern.MatchString(local) && service != "" {
		return service
	}
	return local
}
