package usecases_port

import (
	"context"
	"tool-catalog-service/internal/core/domain"
)

type GetFilterOptionsUseCase interface {
	Execute(ctx context.Context) (*domain.FacetOptions, error)
}
