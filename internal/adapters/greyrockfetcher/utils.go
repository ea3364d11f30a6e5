package greyrockfetcher

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// normalizeWhitespace схлопывает любые пробельные последовательности в один
// пробел. Видимый текст источника полон переносов и отступов верстки.
func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// capitalizeFirst приводит значение к виду "Первая буква заглавная".
func capitalizeFirst(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	runes := []rune(strings.ToLower(s))
	caser := cases.Upper(language.English)

	firstRuneTitle := []rune(caser.String(string(runes[0])))
	runes[0] = firstRuneTitle[0]

	return string(runes)
}

// truncateWithEllipsis обрезает строку до max рун с маркером многоточия.
func truncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}

// parseMoney разбирает денежный токен вида "1,234.56".
func parseMoney(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	cleaned = strings.TrimPrefix(cleaned, "$")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// shortID возвращает первые 8 символов идентификатора для синтетического
// заголовка.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
