package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/FloodCustomApp/greyrock-listings/internal/contextkeys"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/port"
	"github.com/FloodCustomApp/greyrock-listings/pkg/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQChangeNotifierAdapter публикует событие об изменении набора объявлений.
type RabbitMQChangeNotifierAdapter struct {
	producer   *rabbitmq.Publisher
	routingKey string
}

// NewRabbitMQChangeNotifierAdapter создает новый экземпляр
func NewRabbitMQChangeNotifierAdapter(producer *rabbitmq.Publisher, routingKey string) (*RabbitMQChangeNotifierAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("routingKey cannot be empty")
	}

	return &RabbitMQChangeNotifierAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

// NotifyChanges отправляет событие ListingSetChanged в обменник
func (a *RabbitMQChangeNotifierAdapter) NotifyChanges(ctx context.Context, snapshot *domain.RunSnapshot) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "RabbitMQChangeNotifierAdapter",
		"routing_key": a.routingKey,
		"run_id":      snapshot.RunID,
	})

	eventDTO := ListingSetChangedEventDTO{
		RunID:         snapshot.RunID,
		Source:        snapshot.Source,
		ScrapedAt:     snapshot.ScrapedAt,
		Fingerprint:   snapshot.Meta.Fingerprint,
		TotalCount:    snapshot.Meta.TotalCount,
		PreviousCount: snapshot.Meta.PreviousCount,
		NoInventory:   snapshot.Meta.NoInventory,
	}

	eventJSON, err := json.Marshal(eventDTO)
	if err != nil {
		adapterLogger.Error("Failed to marshal change event to JSON", err, nil)
		return fmt.Errorf("failed to marshal change event for run %s: %w", snapshot.RunID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         eventJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    "ListingSetChangedEvent",
			"event-version": "1.0.0",
		},
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish change event", err, nil)
		return err
	}

	adapterLogger.Info("Successfully published change event", port.Fields{
		"fingerprint": snapshot.Meta.Fingerprint,
		"total_count": snapshot.Meta.TotalCount,
	})
	return nil
}
