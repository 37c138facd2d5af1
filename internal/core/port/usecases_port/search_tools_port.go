package usecases_port

import (
	"context"
	"tool-catalog-service/internal/core/domain"
)

type SearchToolsUseCase interface {
	Execute(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error)
}
