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

// FetchIndex загружает индексную страницу и прогоняет ее через ParseIndex.
// Любая сетевая ошибка возвращается как есть - для пайплайна она
// непрозрачна и фатальна.
func (a *GreyrockFetcherAdapter) FetchIndex(ctx context.Context) (*domain.IndexResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "GreyrockFetcherAdapter(FetchIndex)"})

	collector := a.collector.Clone()

	var result *domain.IndexResult
	var responseErr error

	collector.OnRequest(func(r *colly.Request) {
		fetchLogger.Debug("Making request to fetch index page", port.Fields{
			"url": r.URL.String(),
		})
	})

	collector.OnResponse(func(r *colly.Response) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			fetchLogger.Error("Failed to parse index page HTML", err, nil)
			responseErr = fmt.Errorf("greyrock adapter: failed to parse index html: %w", err)
			return
		}
		result = ParseIndex(doc, a.baseURL, fetchLogger)
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchLogger.Error("Failed to fetch index page", err, port.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		})
		responseErr = fmt.Errorf("greyrock adapter: request to %s failed with status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	if err := collector.Visit(a.indexURL); err != nil {
		fetchLogger.Error("Failed to visit index page", err, port.Fields{"url": a.indexURL})
		return nil, fmt.Errorf("greyrock adapter: failed to visit index page: %w", err)
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}
	if result == nil {
		return nil, fmt.Errorf("greyrock adapter: no response received for index page %s", a.indexURL)
	}

	fetchLogger.Info("Finished fetching index page", port.Fields{
		"outcome":      string(result.Outcome),
		"refs_found":   len(result.Refs),
		"cards_parsed": len(result.Records),
	})

	return result, nil
}
