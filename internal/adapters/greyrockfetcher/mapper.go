package greyrockfetcher

import (
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/FloodCustomApp/greyrock-listings/internal/constants"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
)

// buildRecord собирает одну запись объекта из области разметки.
// Одна и та же процедура обслуживает обе формы страницы: карточку на
// индексе и полную страницу объекта, различие только во флаге fullPage.
// После сборки запись не изменяется (кроме обогащения координатами).
func buildRecord(id string, scope *goquery.Selection, fullPage bool, baseURL string) *domain.ListingRecord {
	text := normalizeWhitespace(scope.Text())

	address, city := ExtractAddress(text)
	price := ExtractPrice(text, fullPage)
	area := ExtractArea(text)

	// Явно указанная ставка имеет приоритет; производная считается
	// только когда известны и цена, и площадь.
	ratePerArea := ExtractStatedRate(text)
	if ratePerArea == nil && price != nil && area != nil && *area != 0 {
		v := math.Round(*price / *area * 12 * 100) / 100
		ratePerArea = &v
	}

	availability := ExtractAvailability(text)

	title := ExtractTitle(titleInput{
		scope:    scope,
		text:     text,
		fullPage: fullPage,
		address:  address,
		id:       id,
	})

	description := truncateWithEllipsis(ExtractDescription(scope, text), constants.DescriptionMaxLen)

	images := ExtractImages(scope)
	if images == nil {
		images = []string{}
	}

	detailURL := buildDetailURL(baseURL, id)

	return &domain.ListingRecord{
		ID:                     id,
		Title:                  title,
		Address:                address,
		City:                   city,
		Category:               ExtractCategory(text),
		LeaseType:              ExtractLeaseType(text),
		Price:                  price,
		Area:                   area,
		PricePerAreaAnnualized: ratePerArea,
		Description:            description,
		Availability:           availability,
		DerivedStatus:          domain.DeriveStatus(availability),
		Images:                 images,
		DetailURL:              detailURL,
		ActionURL:              detailURL + constants.ActionURLSuffix,
	}
}

func buildDetailURL(baseURL, id string) string {
	return strings.TrimSuffix(baseURL, "/") + constants.DetailLinkMarker + id
}
