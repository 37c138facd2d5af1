package usecases_port

import (
	"context"
	"tool-catalog-service/internal/core/domain"
)

type SeedToolsUseCase interface {
	Execute(ctx context.Context, tools []domain.Tool) (int, error)
}
