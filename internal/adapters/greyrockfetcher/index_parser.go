package greyrockfetcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/FloodCustomApp/greyrock-listings/internal/constants"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/port"
)

// ParseIndex разбирает индексную страницу в одно из трех терминальных
// состояний. Якоря дедуплицируются по сегменту идентификатора в URL с
// сохранением порядка первого появления: два якоря на один объект дают
// ровно одну запись. Разбор чистый и идемпотентный: один и тот же
// документ всегда дает один и тот же набор в том же порядке.
func ParseIndex(doc *goquery.Document, baseURL string, logger port.LoggerPort) *domain.IndexResult {
	seen := make(map[string]bool)
	var refs []domain.ListingRef
	var records []domain.ListingRecord

	doc.Find("a[href*='" + constants.DetailLinkMarker + "']").Each(func(_ int, anchor *goquery.Selection) {
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}
		m := constants.DetailLinkPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		id := m[1]
		if seen[id] {
			return
		}
		seen[id] = true

		refs = append(refs, domain.ListingRef{
			ID:        id,
			DetailURL: buildDetailURL(baseURL, id),
		})

		scope, found := LocateScope(anchor)
		if !found {
			logger.Warn("No enclosing card found for listing anchor, excluding from record set", port.Fields{
				"listing_id": id,
			})
			return
		}

		records = append(records, *buildRecord(id, scope, false, baseURL))
	})

	if len(refs) > 0 {
		return &domain.IndexResult{
			Outcome: domain.IndexOutcomeListings,
			Refs:    refs,
			Records: records,
		}
	}

	// Ни одного якоря. Пустой инвентарь - валидный успех, но только при
	// явной формулировке; иначе сломался контракт верстки источника.
	bodyText := strings.ToLower(normalizeWhitespace(doc.Find("body").Text()))
	for _, phrase := range constants.NoInventoryPhrases {
		if strings.Contains(bodyText, phrase) {
			return &domain.IndexResult{Outcome: domain.IndexOutcomeNoInventory}
		}
	}

	return &domain.IndexResult{Outcome: domain.IndexOutcomeStructureChanged}
}
