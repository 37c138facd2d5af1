package usecase

import (
	"context"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"
)

var facetFields = []domain.Field{
	domain.FieldCategory,
	domain.FieldCity,
	domain.FieldCondition,
	domain.FieldAvailability,
	domain.FieldStatus,
}

// FacetAggregator считает значения фильтров по всей коллекции, без учёта текущего запроса
type FacetAggregator struct {
	retry *BoundedRetry
}

func NewFacetAggregator(retry *BoundedRetry) *FacetAggregator {
	return &FacetAggregator{retry: retry}
}

func (a *FacetAggregator) Aggregate(ctx context.Context) (*domain.FacetOptions, error) {
	var distinct *domain.DistinctValues
	err := a.retry.Run(ctx, domain.StageAggregate, func(ctx context.Context, collection port.ToolCollectionPort) error {
		values, err := collection.AggregateDistinctValues(ctx, facetFields)
		if err != nil {
			return err
		}
		distinct = values
		return nil
	})
	if err != nil {
		return nil, err
	}

	options := buildFacetOptions(distinct)
	return &options, nil
}

// buildFacetOptions - единственное место, где availability и legacy status сливаются в один фасет
func buildFacetOptions(distinct *domain.DistinctValues) domain.FacetOptions {
	if distinct == nil {
		return domain.EmptyFacetOptions()
	}
	values := distinct.Values

	return domain.FacetOptions{
		Categories:     domain.DistinctSorted(values[domain.FieldCategory]),
		Cities:         domain.DistinctSorted(values[domain.FieldCity]),
		Conditions:     domain.DistinctSorted(values[domain.FieldCondition]),
		Availabilities: domain.MergeAvailabilities(values[domain.FieldAvailability], values[domain.FieldStatus]),
		Statuses:       domain.DistinctSorted(values[domain.FieldStatus]),
		TotalTools:     distinct.Total,
	}
}
