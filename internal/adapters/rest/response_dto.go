package rest

import (
	"time"

	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
)

// Структура для ответа API со сводкой по снапшоту
type SnapshotInfoResponse struct {
	RunID         string    `json:"runId"`
	Source        string    `json:"source"`
	ScrapedAt     time.Time `json:"scrapedAt"`
	TotalCount    int       `json:"totalCount"`
	NoInventory   bool      `json:"noInventory"`
	Fingerprint   string    `json:"fingerprint"`
	HasChanges    bool      `json:"hasChanges"`
	PreviousCount *int      `json:"previousCount,omitempty"`
	WarningCount  int       `json:"warningCount"`
}

func toSnapshotInfoResponse(s *domain.RunSnapshot) SnapshotInfoResponse {
	return SnapshotInfoResponse{
		RunID:         s.RunID,
		Source:        s.Source,
		ScrapedAt:     s.ScrapedAt,
		TotalCount:    s.Meta.TotalCount,
		NoInventory:   s.Meta.NoInventory,
		Fingerprint:   s.Meta.Fingerprint,
		HasChanges:    s.Meta.HasChanges,
		PreviousCount: s.Meta.PreviousCount,
		WarningCount:  len(s.Meta.Warnings),
	}
}
