package usecase

import (
	"context"
	"tool-catalog-service/internal/contextkeys"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"
)

type GetFilterOptionsUseCase struct {
	aggregator *FacetAggregator
}

func NewGetFilterOptionsUseCase(aggregator *FacetAggregator) *GetFilterOptionsUseCase {
	return &GetFilterOptionsUseCase{aggregator: aggregator}
}

func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context) (*domain.FacetOptions, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetFilterOptions",
	})

	ucLogger.Info("Use case started", nil)

	options, err := uc.aggregator.Aggregate(ctx)
	if err != nil {
		ucLogger.Error("Failed to aggregate filter options", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_tools": options.TotalTools})
	return options, nil
}
