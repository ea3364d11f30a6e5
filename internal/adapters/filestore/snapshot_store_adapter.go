package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FloodCustomApp/greyrock-listings/internal/contextkeys"
	"github.com/FloodCustomApp/greyrock-listings/internal/contracts"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/port"
)

// FileSnapshotStoreAdapter хранит последний снапшот в одном JSON-файле.
// Это хранилище по умолчанию: пайплайну нужен ровно один предыдущий
// снапшот, история не обязательна.
type FileSnapshotStoreAdapter struct {
	path string
}

func NewFileSnapshotStoreAdapter(path string) (*FileSnapshotStoreAdapter, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path cannot be empty")
	}
	return &FileSnapshotStoreAdapter{path: path}, nil
}

// Latest возвращает последний сохраненный снапшот. Отсутствующий,
// нечитаемый или не проходящий контракт файл трактуется как отсутствие
// предыдущего запуска: пайплайн в этом случае ведет себя как на первом
// запуске, а не падает.
func (a *FileSnapshotStoreAdapter) Latest(ctx context.Context) (*domain.RunSnapshot, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "FileSnapshotStoreAdapter",
		"path":      a.path,
	})

	raw, err := os.ReadFile(a.path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("No snapshot file found, treating as first run", nil)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file %s: %w", a.path, err)
	}

	if err := contracts.ValidateRunSnapshot(raw); err != nil {
		logger.Warn("Stored snapshot does not match the contract, treating as absent", port.Fields{
			"error": err.Error(),
		})
		return nil, nil
	}

	var snapshot domain.RunSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		logger.Warn("Stored snapshot is not a valid JSON document, treating as absent", port.Fields{
			"error": err.Error(),
		})
		return nil, nil
	}

	return &snapshot, nil
}

// Save атомарно записывает снапшот: сначала во временный файл рядом,
// затем rename. Читатель никогда не видит наполовину записанный файл.
func (a *FileSnapshotStoreAdapter) Save(ctx context.Context, snapshot *domain.RunSnapshot) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "FileSnapshotStoreAdapter",
		"path":      a.path,
		"run_id":    snapshot.RunID,
	})

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot %s: %w", snapshot.RunID, err)
	}

	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmpPath := a.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary snapshot file: %w", err)
	}
	if err := os.Rename(tmpPath, a.path); err != nil {
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	logger.Info("Snapshot saved", port.Fields{"total_count": snapshot.Meta.TotalCount})
	return nil
}
