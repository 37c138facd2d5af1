package mongodb_adapter

import (
	"context"
	"errors"
	"tool-catalog-service/internal/core/domain"

	"go.mongodb.org/mongo-driver/mongo"
)

// Коды ошибок сервера, после которых запрос имеет смысл повторить
// (смена primary, остановка узла, сетевые проблемы внутри кластера).
var transientServerCodes = []int{
	6,     // HostUnreachable
	7,     // HostNotFound
	89,    // NetworkTimeout
	91,    // ShutdownInProgress
	189,   // PrimarySteppedDown
	9001,  // SocketException
	10107, // NotWritablePrimary
	11600, // InterruptedAtShutdown
	11602, // InterruptedDueToReplStateChange
	13435, // NotPrimaryNoSecondaryOk
	13436, // NotPrimaryOrSecondary
}

var transientLabels = []string{"TransientTransactionError", "RetryableWriteError"}

// classifyError помечает временные ошибки драйвера как domain.ErrTransientFailure.
// Остальные ошибки возвращаются без изменений.
func classifyError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	if isTransient(err) {
		return domain.MarkTransient(err)
	}
	return err
}

func isTransient(err error) bool {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}

	var labeled mongo.LabeledError
	if errors.As(err, &labeled) {
		for _, label := range transientLabels {
			if labeled.HasErrorLabel(label) {
				return true
			}
		}
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		for _, code := range transientServerCodes {
			if serverErr.HasErrorCode(code) {
				return true
			}
		}
	}
	return false
}
