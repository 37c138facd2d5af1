package port

import (
	"context"
	"tool-catalog-service/internal/core/domain"
)

// ToolCollectionPort - коллекция записей о инструментах, только чтение.
// Временные ошибки драйвера адаптер оборачивает в domain.ErrTransientFailure.
type ToolCollectionPort interface {
	Find(ctx context.Context, predicate domain.Predicate, sort domain.SortSpec) ([]domain.Tool, error)
	AggregateDistinctValues(ctx context.Context, fields []domain.Field) (*domain.DistinctValues, error)
}

// ToolStoreConnectorPort выдаёт готовую к работе коллекцию.
// Acquire идемпотентен: живое соединение переиспользуется, битое пересоздаётся.
// Если хранилище недоступно, ошибка оборачивает domain.ErrStoreUnavailable.
type ToolStoreConnectorPort interface {
	Acquire(ctx context.Context) (ToolCollectionPort, error)
	Status(ctx context.Context) domain.StoreStatus
	Close(ctx context.Context) error
}

// ToolSeederPort используется только утилитой начального заполнения
type ToolSeederPort interface {
	EnsureIndexes(ctx context.Context) error
	InsertMany(ctx context.Context, tools []domain.Tool) (int, error)
}
