package greyrockfetcher

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/FloodCustomApp/greyrock-listings/internal/contextkeys"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/port"
)

// FetchListingDetails загружает отдельную страницу объекта и собирает
// полную запись. Извлечение то же, что и для карточек: единый набор
// экстракторов, область - вся страница. Задержку между запросами
// обеспечивает LimitRule родительского коллектора.
func (a *GreyrockFetcherAdapter) FetchListingDetails(ctx context.Context, ref domain.ListingRef) (*domain.ListingRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{
		"component":  "GreyrockFetcherAdapter(FetchListingDetails)",
		"listing_id": ref.ID,
	})

	collector := a.collector.Clone()

	var record *domain.ListingRecord
	var responseErr error

	collector.OnResponse(func(r *colly.Response) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			fetchLogger.Error("Failed to parse detail page HTML", err, nil)
			responseErr = fmt.Errorf("greyrock adapter: failed to parse detail html: %w", err)
			return
		}
		// Область - корень документа, чтобы стратегия page-title видела <title>.
		record = buildRecord(ref.ID, doc.Selection, true, a.baseURL)
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchLogger.Error("Failed to fetch detail page", err, port.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		})
		responseErr = fmt.Errorf("greyrock adapter: request to %s failed with status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	if err := collector.Visit(ref.DetailURL); err != nil {
		fetchLogger.Error("Failed to visit detail page", err, port.Fields{"url": ref.DetailURL})
		return nil, fmt.Errorf("greyrock adapter: failed to visit detail page: %w", err)
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}
	if record == nil {
		return nil, fmt.Errorf("greyrock adapter: no response received for detail page %s", ref.DetailURL)
	}

	fetchLogger.Debug("Successfully parsed detail page", nil)
	return record, nil
}
