package usecases_port

import (
	"context"
	"tool-catalog-service/internal/core/domain"
)

type GetStoreStatusUseCase interface {
	Execute(ctx context.Context) domain.StoreStatus
}
