package usecase

import (
	"context"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"
)

// QueryExecutor выполняет скомпилированный предикат с сортировкой
type QueryExecutor struct {
	retry *BoundedRetry
}

func NewQueryExecutor(retry *BoundedRetry) *QueryExecutor {
	return &QueryExecutor{retry: retry}
}

// Execute возвращает найденные записи в нужном порядке. Пустой результат - не ошибка.
func (e *QueryExecutor) Execute(ctx context.Context, predicate domain.Predicate, sort domain.SortSpec) ([]domain.Tool, error) {
	if predicate == nil {
		predicate = domain.MatchAll()
	}

	var tools []domain.Tool
	err := e.retry.Run(ctx, domain.StageFind, func(ctx context.Context, collection port.ToolCollectionPort) error {
		found, err := collection.Find(ctx, predicate, sort)
		if err != nil {
			return err
		}
		tools = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	if tools == nil {
		tools = []domain.Tool{}
	}
	return tools, nil
}
