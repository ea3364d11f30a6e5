package domain

import "time"

// ValidationWarning - нефатальное замечание валидатора. Всегда попадает
// в метаданные снапшота и не влияет на валидность запуска.
type ValidationWarning struct {
	RecordID string `json:"recordId,omitempty"`
	Rule     string `json:"rule"`
	Detail   string `json:"detail"`
}

// ValidationError - фатальное нарушение, отклоняющее весь запуск.
type ValidationError struct {
	Rule   string `json:"rule"`
	Detail string `json:"detail"`
}

// SnapshotMeta - метаданные одного запуска.
type SnapshotMeta struct {
	TotalCount    int                 `json:"totalCount"`
	NoInventory   bool                `json:"noInventory"`
	Fingerprint   string              `json:"fingerprint"`
	HasChanges    bool                `json:"hasChanges"`
	PreviousCount *int                `json:"previousCount,omitempty"`
	ElapsedMs     int64               `json:"elapsedMs"`
	Warnings      []ValidationWarning `json:"warnings"`
}

// RunSnapshot - единица вывода пайплайна: полный набор записей одного
// запуска плюс метаданные. Снапшот предыдущего запуска читается один раз
// на старте и служит единственным входом для сравнения.
type RunSnapshot struct {
	RunID     string          `json:"runId"`
	Source    string          `json:"source"`
	ScrapedAt time.Time       `json:"scrapedAt"`
	Listings  []ListingRecord `json:"listings"`
	Meta      SnapshotMeta    `json:"meta"`
}

// DiffResult - результат сравнения с предыдущим снапшотом.
// PreviousCount равен nil на первом запуске.
type DiffResult struct {
	Fingerprint   string
	HasChanges    bool
	PreviousCount *int
}
