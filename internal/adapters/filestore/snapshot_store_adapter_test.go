package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
)

func testSnapshot() *domain.RunSnapshot {
	price := 2500.0
	return &domain.RunSnapshot{
		RunID:     "0d1c6c18-7b44-4f5d-9f3c-2b2b6f2d8f11",
		Source:    "greyrock",
		ScrapedAt: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		Listings: []domain.ListingRecord{
			{
				ID:            "abcd1234-0001",
				Title:         "Corner Retail Suite",
				Category:      "Retail",
				Price:         &price,
				Availability:  domain.AvailabilityNow,
				DerivedStatus: domain.StatusAvailable,
				Images:        []string{"https://images.cdn.example.com/a.jpg"},
				DetailURL:     "https://greyrockpm.example.com/listings/detail/abcd1234-0001",
				ActionURL:     "https://greyrockpm.example.com/listings/detail/abcd1234-0001/apply",
			},
		},
		Meta: domain.SnapshotMeta{
			TotalCount:  1,
			Fingerprint: "deadbeef",
			HasChanges:  true,
			Warnings:    []domain.ValidationWarning{},
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshot.json")
	store, err := NewFileSnapshotStoreAdapter(path)
	require.NoError(t, err)

	ctx := context.Background()
	want := testSnapshot()

	require.NoError(t, store.Save(ctx, want))

	got, err := store.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.RunID, got.RunID)
	assert.Equal(t, want.Meta.Fingerprint, got.Meta.Fingerprint)
	require.Len(t, got.Listings, 1)
	assert.Equal(t, want.Listings[0].Title, got.Listings[0].Title)
	require.NotNil(t, got.Listings[0].Price)
	assert.Equal(t, 2500.0, *got.Listings[0].Price)
}

func TestFileStoreMissingFileMeansFirstRun(t *testing.T) {
	store, err := NewFileSnapshotStoreAdapter(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	got, err := store.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStoreCorruptFileTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewFileSnapshotStoreAdapter(path)
	require.NoError(t, err)

	got, err := store.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStoreContractViolationTreatedAsAbsent(t *testing.T) {
	// Корректный JSON, но без обязательных полей контракта.
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"runId":"x"}`), 0o644))

	store, err := NewFileSnapshotStoreAdapter(path)
	require.NoError(t, err)

	got, err := store.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStoreSaveOverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store, err := NewFileSnapshotStoreAdapter(path)
	require.NoError(t, err)

	ctx := context.Background()
	first := testSnapshot()
	require.NoError(t, store.Save(ctx, first))

	second := testSnapshot()
	second.RunID = "11111111-2222-4333-8444-555555555555"
	second.Meta.Fingerprint = "cafebabe"
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.RunID, got.RunID)
	assert.Equal(t, "cafebabe", got.Meta.Fingerprint)

	// Временный файл после rename не остается.
	_, statErr := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileStoreEmptyPathRejected(t *testing.T) {
	_, err := NewFileSnapshotStoreAdapter("")
	assert.Error(t, err)
}
