package greyrockfetcher

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/FloodCustomApp/greyrock-listings/internal/constants"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
)

// Извлечение полей из видимого текста и разметки одной области
// (карточки либо целой страницы объекта). Каждое поле - упорядоченный
// список стратегий: побеждает первая совпавшая, если не совпала ни одна,
// поле отсутствует. Отсутствие - валидный тихий результат, не ошибка.
// Новый вариант верстки добавляется новой стратегией в список, а не
// правкой ветвлений.

// --- Цена ---

var (
	currencyPattern  = regexp.MustCompile(`\$\s?(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`)
	rentLabelPattern = regexp.MustCompile(`(?i)\bRENT\b[:\s]*\$?\s?(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`)
)

// textStrategy - одна именованная стратегия поиска значения в тексте.
type textStrategy struct {
	name     string
	pattern  *regexp.Regexp
	pageOnly bool // применяется только на полной странице объекта
}

var priceStrategies = []textStrategy{
	{name: "rent-label", pattern: rentLabelPattern, pageOnly: true},
	{name: "currency-token", pattern: currencyPattern},
}

// ExtractPrice возвращает месячную арендную ставку.
func ExtractPrice(text string, fullPage bool) *float64 {
	for _, st := range priceStrategies {
		if st.pageOnly && !fullPage {
			continue
		}
		if m := st.pattern.FindStringSubmatch(text); m != nil {
			if v, ok := parseMoney(m[1]); ok {
				return &v
			}
		}
	}
	return nil
}

// --- Площадь ---

var (
	sqftLabelPattern = regexp.MustCompile(`(?i)\bSQUARE\s+FEET\b[:\s]*(\d{1,3}(?:,\d{3})*(?:\.\d+)?|\d+(?:\.\d+)?)`)
	areaUnitPattern  = regexp.MustCompile(`(?i)\b(\d{1,3}(?:,\d{3})*(?:\.\d+)?|\d+(?:\.\d+)?)\s*(?:sq\.?\s?ft\.?|sqft|sf|square\s+feet)\b`)
)

var areaStrategies = []textStrategy{
	{name: "square-feet-label", pattern: sqftLabelPattern},
	{name: "inline-unit", pattern: areaUnitPattern},
}

// ExtractArea возвращает площадь в квадратных футах.
func ExtractArea(text string) *float64 {
	for _, st := range areaStrategies {
		if m := st.pattern.FindStringSubmatch(text); m != nil {
			if v, ok := parseMoney(m[1]); ok {
				return &v
			}
		}
	}
	return nil
}

// --- Прямо указанная годовая ставка за единицу площади ---

var statedRatePattern = regexp.MustCompile(`(?i)\$\s?(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)\s*(?:/|\bper\b)\s*(?:sq\.?\s?ft\.?|sf)\b(?:\s*(?:/|\bper\b)\s*(?:yr|year|annum)\b)?`)

// ExtractStatedRate ищет явно указанную ставку вида "$12.50/SF/YR".
// Явно указанное значение никогда не перезаписывается производным.
func ExtractStatedRate(text string) *float64 {
	if m := statedRatePattern.FindStringSubmatch(text); m != nil {
		if v, ok := parseMoney(m[1]); ok {
			return &v
		}
	}
	return nil
}

// --- Адрес и город ---

// Единственная стратегия: "<улица>, <город>, <двухбуквенный штат> <5-значный индекс>".
// Запасной стратегии нет, при несовпадении адрес отсутствует.
var addressPattern = regexp.MustCompile(`(\d[^,\n]{2,60}),\s*([A-Za-z][A-Za-z .'\-]{1,40}),\s*([A-Z]{2})\s+(\d{5})\b`)

// ExtractAddress возвращает адрес и город. Город никогда не сканируется
// из свободного текста независимо - только как подгруппа успешно
// распознанного адреса.
func ExtractAddress(text string) (address *string, city *string) {
	m := addressPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	addr := normalizeWhitespace(m[0])
	c := strings.TrimSpace(m[2])
	return &addr, &c
}

// --- Заголовок ---

type titleInput struct {
	scope    *goquery.Selection
	text     string
	fullPage bool
	address  *string
	id       string
}

type titleStrategy struct {
	name    string
	extract func(in titleInput) string
}

// Стратегии пробуются строго по порядку, побеждает первый непустой и
// не служебный результат. Последняя стратегия синтетическая, поэтому
// заголовок гарантированно непуст.
var titleStrategies = []titleStrategy{
	{name: "heading", extract: titleFromHeading},
	{name: "anchor-text", extract: titleFromAnchor},
	{name: "page-title", extract: titleFromPageTitle},
	{name: "address", extract: titleFromAddress},
	{name: "synthesized", extract: titleSynthesized},
}

func ExtractTitle(in titleInput) string {
	for _, st := range titleStrategies {
		if v := st.extract(in); v != "" {
			return v
		}
	}
	return "Listing " + shortID(in.id)
}

func isDescriptiveTitle(s string) bool {
	if len(s) < 4 || len(s) >= 200 {
		return false
	}
	lower := strings.ToLower(s)
	for _, prefix := range constants.BoilerplateTitlePrefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return false
		}
	}
	return true
}

func titleFromHeading(in titleInput) string {
	var title string
	in.scope.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		candidate := normalizeWhitespace(h.Text())
		if isDescriptiveTitle(candidate) {
			title = candidate
			return false
		}
		return true
	})
	return title
}

func titleFromAnchor(in titleInput) string {
	var title string
	in.scope.Find("a[href*='" + constants.DetailLinkMarker + "']").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		candidate := normalizeWhitespace(a.Text())
		if isDescriptiveTitle(candidate) {
			title = candidate
			return false
		}
		return true
	})
	return title
}

func titleFromPageTitle(in titleInput) string {
	if !in.fullPage {
		return ""
	}
	raw := normalizeWhitespace(in.scope.Find("title").First().Text())
	// Отрезаем хвост вида " | Greyrock Property Management".
	if i := strings.Index(raw, " | "); i > 0 {
		raw = raw[:i]
	}
	if isDescriptiveTitle(raw) {
		return raw
	}
	return ""
}

func titleFromAddress(in titleInput) string {
	if in.address == nil {
		return ""
	}
	return *in.address
}

func titleSynthesized(in titleInput) string {
	return "Listing " + shortID(in.id)
}

// --- Описание ---

var sentenceRunPattern = regexp.MustCompile(`[A-Z][^.!?\n]{48,498}[.!?]`)

type descriptionStrategy struct {
	name    string
	extract func(scope *goquery.Selection, text string) string
}

var descriptionStrategies = []descriptionStrategy{
	{name: "known-container", extract: descriptionFromContainer},
	{name: "longest-paragraph", extract: descriptionFromLongestParagraph},
	{name: "sentence-run", extract: descriptionFromSentenceRun},
}

func ExtractDescription(scope *goquery.Selection, text string) string {
	for _, st := range descriptionStrategies {
		if v := st.extract(scope, text); v != "" {
			return v
		}
	}
	return ""
}

func descriptionFromContainer(scope *goquery.Selection, _ string) string {
	for _, selector := range constants.DescriptionSelectors {
		var found string
		scope.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			candidate := normalizeWhitespace(el.Text())
			if len(candidate) > 30 && !strings.Contains(candidate, "Privacy Policy") {
				found = candidate
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func descriptionFromLongestParagraph(scope *goquery.Selection, _ string) string {
	var longest string
	scope.Find("p").Each(func(_ int, p *goquery.Selection) {
		candidate := normalizeWhitespace(p.Text())
		if strings.Contains(candidate, "Privacy Policy") {
			return
		}
		if len(candidate) > len(longest) {
			longest = candidate
		}
	})
	if len(longest) > 30 {
		return longest
	}
	return ""
}

func descriptionFromSentenceRun(_ *goquery.Selection, text string) string {
	return sentenceRunPattern.FindString(text)
}

// --- Доступность ---

var availableNowPattern = regexp.MustCompile(`(?i)\bavailable\s+now\b`)

const monthNames = `(?:January|February|March|April|May|June|July|August|September|October|November|December)`

// Поддерживаемые формы даты после метки "Available": MM/DD/YYYY,
// "Month DD, YYYY" и "Month YYYY".
var availableDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bavailable\b[:\s]*(\d{1,2}/\d{1,2}/\d{4})`),
	regexp.MustCompile(`(?i)\bavailable\b[:\s]*(` + monthNames + `\s+\d{1,2},\s*\d{4})`),
	regexp.MustCompile(`(?i)\bavailable\b[:\s]*(` + monthNames + `\s+\d{4})`),
}

// ExtractAvailability возвращает нормализованный токен немедленной
// доступности, дату въезда как есть либо токен "уточняйте".
func ExtractAvailability(text string) string {
	if availableNowPattern.MatchString(text) {
		return domain.AvailabilityNow
	}
	for _, p := range availableDatePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return domain.AvailabilityContact
}

// --- Категория и тип аренды ---

var (
	commercialTypeLabelPattern = regexp.MustCompile(`(?i)\bCommercial\s+Type\b[:\s]*([A-Za-z-]+(?:[ /][A-Za-z-]+)?)`)
	leaseTypeLabelPattern      = regexp.MustCompile(`(?i)\bLease\s+Type\b[:\s]*([A-Za-z-]+(?:[ /][A-Za-z-]+)?)`)
)

// ExtractCategory классифицирует тип объекта: явная метка "Commercial
// Type", затем метка "Lease Type", затем сканирование по ограниченному
// словарю, иначе категория по умолчанию.
func ExtractCategory(text string) string {
	if m := commercialTypeLabelPattern.FindStringSubmatch(text); m != nil {
		return capitalizeFirst(m[1])
	}
	if m := leaseTypeLabelPattern.FindStringSubmatch(text); m != nil {
		return capitalizeFirst(m[1])
	}
	lower := strings.ToLower(text)
	for _, word := range constants.CategoryVocabulary {
		if strings.Contains(lower, word) {
			return capitalizeFirst(word)
		}
	}
	return domain.CategoryDefault
}

// ExtractLeaseType возвращает тип аренды только по явной метке.
func ExtractLeaseType(text string) *string {
	if m := leaseTypeLabelPattern.FindStringSubmatch(text); m != nil {
		v := capitalizeFirst(m[1])
		return &v
	}
	return nil
}

// --- Фотографии ---

// ExtractImages собирает URL фотографий из известных контейнеров галереи,
// исключая логотипы и заглушки, с дедупликацией в порядке первого
// появления. Если целевые маркеры ничего не дали, берется любая картинка
// с хоста ассетов источника.
func ExtractImages(scope *goquery.Selection) []string {
	seen := make(map[string]bool)
	var out []string

	appendImage := func(img *goquery.Selection) {
		for _, attr := range constants.ImageSourceAttrs {
			src, ok := img.Attr(attr)
			if !ok || strings.TrimSpace(src) == "" {
				continue
			}
			src = strings.TrimSpace(src)
			if isExcludedImage(src) {
				return
			}
			if !seen[src] {
				seen[src] = true
				out = append(out, src)
			}
			return // первый заполненный атрибут побеждает
		}
	}

	for _, selector := range constants.GallerySelectors {
		scope.Find(selector).Each(func(_ int, img *goquery.Selection) {
			appendImage(img)
		})
	}

	if len(out) == 0 {
		scope.Find("img").Each(func(_ int, img *goquery.Selection) {
			src, ok := img.Attr("src")
			if !ok || !strings.Contains(src, constants.AssetHostMarker) {
				return
			}
			appendImage(img)
		})
	}

	return out
}

func isExcludedImage(src string) bool {
	lower := strings.ToLower(src)
	for _, marker := range constants.ExcludedImageMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
