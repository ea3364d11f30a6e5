package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GREYROCK_BASE_URL", "https://greyrockpm.example.com")

	cfg, err := LoadConfig("testdata/absent.env")
	require.NoError(t, err)

	assert.Equal(t, "greyrock-parser-service", cfg.AppName)
	assert.Equal(t, "greyrock", cfg.Source.Name)
	assert.False(t, cfg.Source.FetchDetailPages)
	assert.Equal(t, 2000, cfg.Source.RequestDelayMs)
	assert.Equal(t, 200, cfg.Limits.RecordCeiling)
	assert.Equal(t, "file", cfg.Snapshot.Store)
	assert.Equal(t, "data/snapshot.json", cfg.Snapshot.Path)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "8080", cfg.HTTPPort)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GREYROCK_BASE_URL", "https://greyrockpm.example.com")
	t.Setenv("FETCH_DETAIL_PAGES", "true")
	t.Setenv("REQUEST_DELAY_MS", "500")
	t.Setenv("RECORD_CEILING", "50")
	t.Setenv("SNAPSHOT_STORE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/listings")

	cfg, err := LoadConfig("testdata/absent.env")
	require.NoError(t, err)

	assert.True(t, cfg.Source.FetchDetailPages)
	assert.Equal(t, 500, cfg.Source.RequestDelayMs)
	assert.Equal(t, 50, cfg.Limits.RecordCeiling)
	assert.Equal(t, "postgres", cfg.Snapshot.Store)
	assert.Equal(t, "postgres://localhost:5432/listings", cfg.Database.URL)
}

func TestLoadConfigPostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("GREYROCK_BASE_URL", "https://greyrockpm.example.com")
	t.Setenv("SNAPSHOT_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig("testdata/absent.env")
	assert.Error(t, err)
}

func TestLoadConfigUnparsableIntFallsBack(t *testing.T) {
	t.Setenv("GREYROCK_BASE_URL", "https://greyrockpm.example.com")
	t.Setenv("REQUEST_DELAY_MS", "not-a-number")

	cfg, err := LoadConfig("testdata/absent.env")
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Source.RequestDelayMs)
}
