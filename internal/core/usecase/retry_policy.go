package usecase

import (
	"context"
	"time"
	"tool-catalog-service/internal/contextkeys"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"
)

// DefaultRetryDelay - пауза перед единственным повтором
const DefaultRetryDelay = 200 * time.Millisecond

type attempt int

const (
	firstAttempt attempt = iota + 1
	retryAttempt
)

// BoundedRetry выполняет операцию над коллекцией максимум два раза.
// Повтор делается только для временных ошибок и только после повторного Acquire.
type BoundedRetry struct {
	connector port.ToolStoreConnectorPort
	delay     time.Duration
	wait      func(ctx context.Context, d time.Duration) error
}

func NewBoundedRetry(connector port.ToolStoreConnectorPort, delay time.Duration) *BoundedRetry {
	if delay < 0 {
		delay = DefaultRetryDelay
	}
	return &BoundedRetry{
		connector: connector,
		delay:     delay,
		wait:      sleepContext,
	}
}

// Run получает коллекцию и выполняет op. Ошибка первого Acquire возвращается как есть,
// все остальные ошибки превращаются в *domain.SearchExecutionError.
func (r *BoundedRetry) Run(ctx context.Context, stage string, op func(ctx context.Context, collection port.ToolCollectionPort) error) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "BoundedRetry",
		"stage":     stage,
	})

	collection, err := r.connector.Acquire(ctx)
	if err != nil {
		logger.Error("Failed to acquire store connection", err, nil)
		return err
	}

	current := firstAttempt
	for {
		err = op(ctx, collection)
		if err == nil {
			if current == retryAttempt {
				logger.Info("Retry succeeded", nil)
			}
			return nil
		}

		if current == retryAttempt || !domain.IsTransient(err) {
			logger.Error("Store operation failed", err, port.Fields{"attempts": int(current)})
			return &domain.SearchExecutionError{Stage: stage, Attempts: int(current), Err: err}
		}

		logger.Warn("Transient store failure, retrying once", port.Fields{
			"error":    err.Error(),
			"delay_ms": r.delay.Milliseconds(),
		})

		if waitErr := r.wait(ctx, r.delay); waitErr != nil {
			return &domain.SearchExecutionError{Stage: stage, Attempts: int(current), Err: waitErr}
		}
		current = retryAttempt

		// Соединение переполучаем до повтора: битое будет пересоздано коннектором
		collection, err = r.connector.Acquire(ctx)
		if err != nil {
			logger.Error("Failed to re-acquire store connection", err, nil)
			return &domain.SearchExecutionError{Stage: stage, Attempts: int(current), Err: err}
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
