package rabbitmq

import (
	"context"

	"github.com/FloodCustomApp/greyrock-listings/internal/contextkeys"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/port"
)

// NoopChangeNotifierAdapter используется, когда публикация событий отключена конфигом.
type NoopChangeNotifierAdapter struct{}

func NewNoopChangeNotifierAdapter() *NoopChangeNotifierAdapter {
	return &NoopChangeNotifierAdapter{}
}

// NotifyChanges ничего не публикует, только пишет debug-лог.
func (a *NoopChangeNotifierAdapter) NotifyChanges(ctx context.Context, snapshot *domain.RunSnapshot) error {
	logger := contextkeys.LoggerFromContext(ctx)
	logger.Debug("Change notification skipped, notifier is disabled", port.Fields{
		"run_id": snapshot.RunID,
	})
	return nil
}
