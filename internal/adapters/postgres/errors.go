package postgres_adapter

import (
	"context"
	"errors"
	"net"
	"strings"
	"tool-catalog-service/internal/core/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE, после которых запрос имеет смысл повторить
var transientCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"53300": true, // too_many_connections
	"57P01": true, // admin_shutdown
	"57P02": true, // crash_shutdown
	"57P03": true, // cannot_connect_now
}

// classifyError помечает временные ошибки pgx как domain.ErrTransientFailure
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
	if errors.Is(err, context.DeadlineExceeded) || pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// класс 08 - connection exception
		return transientCodes[pgErr.Code] || strings.HasPrefix(pgErr.Code, "08")
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
