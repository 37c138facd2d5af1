package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable - не удалось получить соединение с хранилищем
	ErrStoreUnavailable = errors.New("tool store is unavailable")
	// ErrTransientFailure - временная ошибка, которую имеет смысл повторить
	ErrTransientFailure = errors.New("transient store failure")
)

// Этапы поиска для SearchExecutionError
const (
	StageFind      = "find"
	StageAggregate = "aggregate"
)

// SearchExecutionError - фатальная ошибка выполнения запроса (повтор не помог или не допустим)
type SearchExecutionError struct {
	Stage    string
	Attempts int
	Err      error
}

func (e *SearchExecutionError) Error() string {
	return fmt.Sprintf("search %s failed after %d attempt(s): %v", e.Stage, e.Attempts, e.Err)
}

func (e *SearchExecutionError) Unwrap() error {
	return e.Err
}

// MarkTransient помечает ошибку драйвера как временную
func MarkTransient(err error) error {
	if err == nil || errors.Is(err, ErrTransientFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransientFailure, err)
}

func IsTransient(err error) bool {
	return errors.Is(err, ErrTransientFailure)
}
