package rabbitmq

import (
	"context"
	"fmt"
	"time"
	"tool-catalog-service/internal/contextkeys"
	"tool-catalog-service/internal/contracts"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// publisher - часть rabbitmq_producer.Publisher, нужная адаптеру
type publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// SearchEventsAdapter реализует port.SearchEventsPort: публикует событие
// ToolSearchPerformedEvent после каждого успешного поиска.
type SearchEventsAdapter struct {
	producer   publisher
	routingKey string
	now        func() time.Time
}

func NewSearchEventsAdapter(producer publisher, routingKey string) (*SearchEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &SearchEventsAdapter{
		producer:   producer,
		routingKey: routingKey,
		now:        time.Now,
	}, nil
}

func (a *SearchEventsAdapter) SearchPerformed(ctx context.Context, params domain.SearchParams, totalResults int) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "SearchEventsAdapter",
		"routing_key": a.routingKey,
	})

	traceID := contextkeys.TraceIDFromContext(ctx)
	event := contracts.NewToolSearchPerformedEvent(params, totalResults, traceID, a.now())
	body, err := event.Marshal()
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: invalid search event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Type:         contracts.ToolSearchPerformedEventType,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Headers: amqp.Table{
			"x-event-version": contracts.ToolSearchPerformedEventVersion,
		},
	}
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish search event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish search event: %w", err)
	}

	adapterLogger.Debug("Search event published", port.Fields{"total_results": totalResults})
	return nil
}
