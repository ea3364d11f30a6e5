package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FloodCustomApp/greyrock-listings/internal/contextkeys"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/port"
)

// RunPipelineUseCase - один логический запуск пайплайна:
// индекс -> записи -> обогащение координатами -> валидация -> сравнение
// со снапшотом -> сохранение. Запусков параллельно не бывает; снапшот
// предыдущего запуска читается один раз на старте как неизменяемый вход.
type RunPipelineUseCase struct {
	fetcher   port.GreyrockFetcherPort
	geocoder  port.GeocoderPort
	store     port.SnapshotStorePort
	notifier  port.ChangeNotifierPort
	validator *ValidateRecordsUseCase
	differ    *DiffSnapshotUseCase

	source           string
	fetchDetailPages bool
}

// NewRunPipelineUseCase создает новый экземпляр use case.
func NewRunPipelineUseCase(
	fetcher port.GreyrockFetcherPort,
	geocoder port.GeocoderPort,
	store port.SnapshotStorePort,
	notifier port.ChangeNotifierPort,
	validator *ValidateRecordsUseCase,
	differ *DiffSnapshotUseCase,
	source string,
	fetchDetailPages bool,
) *RunPipelineUseCase {
	return &RunPipelineUseCase{
		fetcher:          fetcher,
		geocoder:         geocoder,
		store:            store,
		notifier:         notifier,
		validator:        validator,
		differ:           differ,
		source:           source,
		fetchDetailPages: fetchDetailPages,
	}
}

// Execute выполняет основную логику use case.
// Отклоненный запуск никогда не трогает ранее сохраненный снапшот:
// до успешной валидации записи в хранилище не происходит.
func (uc *RunPipelineUseCase) Execute(ctx context.Context) (*domain.RunSnapshot, error) {
	baseLogger := contextkeys.LoggerFromContext(ctx)
	ucLogger := baseLogger.WithFields(port.Fields{"use_case": "RunPipeline"})

	startedAt := time.Now()

	previous, err := uc.store.Latest(ctx)
	if err != nil {
		// Нечитаемый предыдущий снапшот не повод не собирать новый.
		ucLogger.Warn("Failed to read previous snapshot, treating as absent", port.Fields{"error": err.Error()})
		previous = nil
	}

	indexResult, err := uc.fetcher.FetchIndex(ctx)
	if err != nil {
		// Сетевая ошибка после исчерпания ретраев - непрозрачна и фатальна.
		ucLogger.Error("Failed to fetch index page", err, nil)
		return nil, err
	}

	records := make([]domain.ListingRecord, 0)
	noInventory := false

	switch indexResult.Outcome {
	case domain.IndexOutcomeStructureChanged:
		ucLogger.Error("Index page yielded neither listings nor an empty-inventory phrase", domain.ErrStructureChanged, nil)
		return nil, domain.ErrStructureChanged

	case domain.IndexOutcomeNoInventory:
		ucLogger.Info("Source reports no inventory, producing an empty valid snapshot", nil)
		noInventory = true

	case domain.IndexOutcomeListings:
		records = uc.collectRecords(ctx, indexResult, ucLogger)
		if len(records) == 0 {
			// Ссылки были, а записей нет - это уже не частичный успех.
			ucLogger.Error("No records could be extracted from a non-empty index", domain.ErrNoRecordsExtracted, port.Fields{
				"refs_found": len(indexResult.Refs),
			})
			return nil, domain.ErrNoRecordsExtracted
		}
	}

	for i := range records {
		city := ""
		if records[i].City != nil {
			city = *records[i].City
		}
		coords := uc.geocoder.Locate(city)
		records[i].Coordinates = &coords
	}

	warnings, validationErrors := uc.validator.Execute(records)
	if len(validationErrors) > 0 {
		vErr := &domain.ValidationFailedError{Errors: validationErrors}
		ucLogger.Error("Run rejected by validator, previous snapshot left untouched", vErr, port.Fields{
			"errors_count": len(validationErrors),
		})
		return nil, vErr
	}

	diff := uc.differ.Execute(previous, records)

	snapshot := &domain.RunSnapshot{
		RunID:     uuid.New().String(),
		Source:    uc.source,
		ScrapedAt: time.Now().UTC(),
		Listings:  records,
		Meta: domain.SnapshotMeta{
			TotalCount:    len(records),
			NoInventory:   noInventory,
			Fingerprint:   diff.Fingerprint,
			HasChanges:    diff.HasChanges,
			PreviousCount: diff.PreviousCount,
			ElapsedMs:     time.Since(startedAt).Milliseconds(),
			Warnings:      warnings,
		},
	}

	if err := uc.store.Save(ctx, snapshot); err != nil {
		ucLogger.Error("Failed to persist snapshot", err, nil)
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	if diff.HasChanges {
		// Уведомление best-effort: его провал не отменяет уже сохраненный запуск.
		if err := uc.notifier.NotifyChanges(ctx, snapshot); err != nil {
			ucLogger.Error("Failed to publish change notification", err, nil)
		}
	}

	ucLogger.Info("Pipeline run finished", port.Fields{
		"records":      len(records),
		"warnings":     len(warnings),
		"has_changes":  diff.HasChanges,
		"no_inventory": noInventory,
		"elapsed_ms":   snapshot.Meta.ElapsedMs,
	})

	return snapshot, nil
}

// collectRecords выбирает режим сбора: готовые карточки индекса либо
// последовательный обход детальных страниц. Провал одного объекта
// изолирован: логируется и пропускается, пайплайн продолжает работу.
func (uc *RunPipelineUseCase) collectRecords(ctx context.Context, indexResult *domain.IndexResult, logger port.LoggerPort) []domain.ListingRecord {
	if !uc.fetchDetailPages {
		return indexResult.Records
	}

	records := make([]domain.ListingRecord, 0, len(indexResult.Refs))
	for _, ref := range indexResult.Refs {
		record, err := uc.fetcher.FetchListingDetails(ctx, ref)
		if err != nil {
			logger.Error("Failed to process listing, skipping", err, port.Fields{"listing_id": ref.ID})
			continue
		}
		records = append(records, *record)
	}
	return records
}
