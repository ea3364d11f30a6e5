package rabbitmq

import "time"

// ListingSetChangedEventDTO - это структура контракта события об изменении
// набора объявлений. Она точно соответствует JSON-схеме события.
type ListingSetChangedEventDTO struct {
	RunID         string    `json:"runId"`
	Source        string    `json:"source"`
	ScrapedAt     time.Time `json:"scrapedAt"`
	Fingerprint   string    `json:"fingerprint"`
	TotalCount    int       `json:"totalCount"`
	PreviousCount *int      `json:"previousCount,omitempty"`
	NoInventory   bool      `json:"noInventory"`
}
