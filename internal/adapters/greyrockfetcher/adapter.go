package greyrockfetcher

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// GreyrockFetcherAdapter отвечает за все взаимодействия с сайтом-источником.
type GreyrockFetcherAdapter struct {
	// родительский коллектор, который разделяет лимиты между клонами
	collector *colly.Collector
	baseURL   string
	indexURL  string
}

// NewGreyrockFetcherAdapter - конструктор.
// requestDelay - обязательная минимальная пауза между запросами к
// источнику; это требование вежливости, а не оптимизация, поэтому
// Parallelism жестко равен 1 и не настраивается.
func NewGreyrockFetcherAdapter(baseURL string, requestDelay time.Duration) (*GreyrockFetcherAdapter, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("GreyrockFetcherAdapter: invalid base URL %q: %w", baseURL, err)
	}

	c := colly.NewCollector(colly.AllowedDomains(parsed.Host), colly.AllowURLRevisit())

	// Эти правила наследуются всеми клонами коллектора.
	err = c.Limit(&colly.LimitRule{
		DomainGlob:  parsed.Host,
		Parallelism: 1,
		Delay:       requestDelay,
		RandomDelay: requestDelay / 2,
	})
	if err != nil {
		return nil, fmt.Errorf("GreyrockFetcherAdapter: failed to set limit rule: %w", err)
	}

	extensions.RandomUserAgent(c) // На каждый запрос подставляется User-Agent реального браузера
	extensions.Referer(c)

	return &GreyrockFetcherAdapter{
		collector: c,
		baseURL:   baseURL,
		indexURL:  parsed.JoinPath("listings").String(),
	}, nil
}
