package usecase

import (
	"context"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"
)

type GetStoreStatusUseCase struct {
	connector port.ToolStoreConnectorPort
}

func NewGetStoreStatusUseCase(connector port.ToolStoreConnectorPort) *GetStoreStatusUseCase {
	return &GetStoreStatusUseCase{connector: connector}
}

func (uc *GetStoreStatusUseCase) Execute(ctx context.Context) domain.StoreStatus {
	return uc.connector.Status(ctx)
}
