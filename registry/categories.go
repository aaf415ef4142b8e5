package registry

// Categories фиксированный список категорий портала. Порядок и
// написание должны совпадать с порталом байт в байт.
var Categories = []string{
	"Ноутбуки",
	"Компьютеры",
	"Серверы",
	"Телефоны",
	"Планшеты",
	"Компоненты ПК/Серверов",
	"Мониторы",
	"Принтеры/Сканеры",
	"Проекторы и принадлежности",
	"ИБП (UPS)",
	"Аксессуары",
	"Хранение данных (СХД)",
	"Программное обеспечение",
	"Сетевое оборудование",
	"Кабели/Переходники",
	"Смарт-Гаджеты",
	"ТВ/Аудио/Фото/Видео техника",
	"Торговое оборудование",
	"Системы безопасности",
}

var categorySet = func() map[string]bool {
	m := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}()

// IsValidCategory проверяет, входит ли категория в словарь портала.
// Пустая строка — допустимое значение "неизвестно".
func IsValidCategory(category string) bool {
	return category == "" || categorySet[category]
}
