package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/FloodCustomApp/greyrock-listings/internal/contextkeys"
	"github.com/FloodCustomApp/greyrock-listings/internal/contracts"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSnapshotStoreAdapter хранит снапшоты запусков в PostgreSQL.
// В отличие от файлового хранилища ведет полный архив: каждый запуск -
// отдельная строка, Latest берет самую свежую по scraped_at.
type PostgresSnapshotStoreAdapter struct {
	dbPool *pgxpool.Pool
}

// NewPostgresSnapshotStoreAdapter создает новый экземпляр PostgresSnapshotStoreAdapter
func NewPostgresSnapshotStoreAdapter(dbPool *pgxpool.Pool) (*PostgresSnapshotStoreAdapter, error) {
	if dbPool == nil {
		return nil, fmt.Errorf("postgres snapshot store: dbPool cannot be nil")
	}
	return &PostgresSnapshotStoreAdapter{dbPool: dbPool}, nil
}

// Latest извлекает самый свежий снапшот для сравнения. Возвращает (nil, nil),
// если архив пуст или сохраненный снапшот не проходит контракт.
func (r *PostgresSnapshotStoreAdapter) Latest(ctx context.Context) (*domain.RunSnapshot, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresSnapshotStoreAdapter",
		"method":    "Latest",
	})

	var payload []byte
	query := `SELECT payload FROM listing_snapshots ORDER BY scraped_at DESC LIMIT 1`

	repoLogger.Debug("Getting latest snapshot", nil)

	err := r.dbPool.QueryRow(ctx, query).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("No snapshots found, treating as first run", nil)
			return nil, nil
		}
		repoLogger.Error("Error getting latest snapshot", err, nil)
		return nil, fmt.Errorf("postgres snapshot store: error querying latest snapshot: %w", err)
	}

	if err := contracts.ValidateRunSnapshot(payload); err != nil {
		repoLogger.Warn("Stored snapshot does not match the contract, treating as absent", port.Fields{
			"error": err.Error(),
		})
		return nil, nil
	}

	var snapshot domain.RunSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		repoLogger.Warn("Stored snapshot payload is not a valid JSON document, treating as absent", port.Fields{
			"error": err.Error(),
		})
		return nil, nil
	}

	repoLogger.Debug("Found latest snapshot", port.Fields{
		"run_id":      snapshot.RunID,
		"fingerprint": snapshot.Meta.Fingerprint,
	})
	return &snapshot, nil
}

// Save добавляет снапшот в архив. Запуски никогда не перезаписываются.
func (r *PostgresSnapshotStoreAdapter) Save(ctx context.Context, snapshot *domain.RunSnapshot) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresSnapshotStoreAdapter",
		"method":    "Save",
		"run_id":    snapshot.RunID,
	})

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("postgres snapshot store: failed to marshal snapshot %s: %w", snapshot.RunID, err)
	}

	query := `
        INSERT INTO listing_snapshots (run_id, source, scraped_at, fingerprint, payload)
        VALUES ($1, $2, $3, $4, $5)
    `

	repoLogger.Debug("Saving snapshot", port.Fields{
		"fingerprint": snapshot.Meta.Fingerprint,
		"total_count": snapshot.Meta.TotalCount,
	})

	_, err = r.dbPool.Exec(ctx, query,
		snapshot.RunID,
		snapshot.Source,
		snapshot.ScrapedAt,
		snapshot.Meta.Fingerprint,
		payload,
	)
	if err != nil {
		repoLogger.Error("Error saving snapshot", err, nil)
		return fmt.Errorf("postgres snapshot store: error saving snapshot '%s': %w", snapshot.RunID, err)
	}

	repoLogger.Info("Snapshot saved", port.Fields{"total_count": snapshot.Meta.TotalCount})
	return nil
}

// CREATE TABLE IF NOT EXISTS listing_snapshots (
//     run_id UUID PRIMARY KEY,
//     source VARCHAR(255) NOT NULL,
//     scraped_at TIMESTAMPTZ NOT NULL,
//     fingerprint VARCHAR(64) NOT NULL,
//     payload JSONB NOT NULL
// );

// CREATE INDEX IF NOT EXISTS idx_listing_snapshots_scraped_at ON listing_snapshots(scraped_at DESC);
