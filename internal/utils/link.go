package utils

import "strings"

// DisplayLink возвращает ссылку в виде, пригодном для href в админке:
// если в сохранённом значении нет схемы http:// или https://, подставляет https://.
// Само сохранённое значение не меняется - это только отображение.
func DisplayLink(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// ShortID возвращает префикс идентификатора для текста уведомлений.
func ShortID(id string, n int) string {
	if n <= 0 || len(id) <= n {
		return id
	}
	return id[:n]
}
