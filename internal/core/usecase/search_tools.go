package usecase

import (
	"context"
	"tool-catalog-service/internal/contextkeys"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"

	"golang.org/x/sync/errgroup"
)

type SearchToolsUseCase struct {
	compiler   *FilterCompiler
	executor   *QueryExecutor
	aggregator *FacetAggregator
	events     port.SearchEventsPort // может быть nil
}

func NewSearchToolsUseCase(compiler *FilterCompiler, executor *QueryExecutor, aggregator *FacetAggregator, events port.SearchEventsPort) *SearchToolsUseCase {
	return &SearchToolsUseCase{
		compiler:   compiler,
		executor:   executor,
		aggregator: aggregator,
		events:     events,
	}
}

// Execute компилирует фильтр, параллельно выполняет поиск и подсчёт фасетов
// и собирает конверт ответа.
func (uc *SearchToolsUseCase) Execute(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchTools",
		"params":   params,
	})

	ucLogger.Info("Use case started", nil)

	req := domain.NewSearchRequest(params)
	predicate := uc.compiler.Compile(req)

	ucLogger.Debug("Filter compiled", port.Fields{
		"sort_field":     req.Sort.Field,
		"sort_direction": req.Sort.Direction.String(),
	})

	var (
		tools  []domain.Tool
		facets *domain.FacetOptions
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := uc.executor.Execute(gctx, predicate, req.Sort)
		if err != nil {
			return err
		}
		tools = found
		return nil
	})
	g.Go(func() error {
		options, err := uc.aggregator.Aggregate(gctx)
		if err != nil {
			return err
		}
		facets = options
		return nil
	})

	if err := g.Wait(); err != nil {
		ucLogger.Error("Search failed", err, nil)
		return nil, err
	}

	result := assembleResult(params, tools, *facets)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_results": result.TotalResults,
		"total_tools":   result.FilterOptions.TotalTools,
	})

	if uc.events != nil {
		if err := uc.events.SearchPerformed(ctx, params, result.TotalResults); err != nil {
			// аналитика не должна ломать поиск
			ucLogger.Warn("Failed to publish search event", port.Fields{"error": err.Error()})
		}
	}

	return result, nil
}

func assembleResult(params domain.SearchParams, tools []domain.Tool, facets domain.FacetOptions) *domain.SearchResult {
	return &domain.SearchResult{
		Tools:         tools,
		FilterOptions: facets,
		Params:        params,
		TotalResults:  len(tools),
	}
}
