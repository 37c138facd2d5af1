package usecase

import (
	"context"
	"sync"
	"time"
	"tool-catalog-service/internal/adapters/memory"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"
)

var baseTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func sampleTools() []domain.Tool {
	return []domain.Tool{
		{
			ID: "t1", Name: "Electric Drill", Description: "Cordless electric drill, 18V, includes two batteries and charger.",
			Category: domain.CategoryPowerTools, Condition: domain.ConditionGood,
			Location:     domain.Location{City: "Colombo", Area: "Nugegoda"},
			Availability: domain.AvailabilityAvailable, Status: "available",
			Tags:      []string{"cordless", "18v", "drill", "battery"},
			CreatedAt: baseTime.Add(1 * time.Hour),
		},
		{
			ID: "t2", Name: "Hand Saw", Description: "Sharp hand saw, suitable for woodwork.",
			Category: domain.CategoryHandTools, Condition: domain.ConditionExcellent,
			Location:     domain.Location{City: "Kandy", Area: "Peradeniya"},
			Availability: domain.AvailabilityBorrowed,
			Tags:         []string{"woodwork", "saw", "hand tool"},
			CreatedAt:    baseTime.Add(2 * time.Hour),
		},
		{
			// старая запись: только legacy status
			ID: "t3", Name: "Lawn Mower", Description: "Electric lawn mower, recently serviced.",
			Category: domain.CategoryGardenTools, Condition: domain.ConditionGood,
			Location:  domain.Location{City: "Galle", Area: "Unawatuna"},
			Status:    "borrowed",
			Tags:      []string{"lawn", "mower", "garden"},
			CreatedAt: baseTime.Add(3 * time.Hour),
		},
		{
			ID: "t4", Name: "Hammer Drill Bits", Description: "Masonry bit set.",
			Category: domain.CategoryPowerTools, Condition: domain.ConditionFair,
			Location:  domain.Location{City: "colombo 7", Area: "Cinnamon Gardens"},
			Status:    "maintenance",
			Tags:      []string{"masonry", "bits"},
			CreatedAt: baseTime.Add(4 * time.Hour),
		},
		{
			// ни availability, ни status
			ID: "t5", Name: "Pressure Washer", Description: "High-pressure washer for cleaning vehicles.",
			Category: domain.CategoryCleaning, Condition: domain.ConditionGood,
			Location:  domain.Location{City: "Matara", Area: "Walgama"},
			Tags:      []string{"pressure", "washer", "cleaning"},
			CreatedAt: baseTime.Add(5 * time.Hour),
		},
	}
}

func ids(tools []domain.Tool) []string {
	result := make([]string, len(tools))
	for i, tool := range tools {
		result[i] = tool.ID
	}
	return result
}

// scriptedCollection возвращает заранее заданные ошибки, затем делегирует коллекции
type scriptedCollection struct {
	inner port.ToolCollectionPort

	mu        sync.Mutex
	findErrs  []error
	aggErrs   []error
	findCalls int
	aggCalls  int
}

func (s *scriptedCollection) Find(ctx context.Context, predicate domain.Predicate, sort domain.SortSpec) ([]domain.Tool, error) {
	s.mu.Lock()
	idx := s.findCalls
	s.findCalls++
	var err error
	if idx < len(s.findErrs) {
		err = s.findErrs[idx]
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return s.inner.Find(ctx, predicate, sort)
}

func (s *scriptedCollection) AggregateDistinctValues(ctx context.Context, fields []domain.Field) (*domain.DistinctValues, error) {
	s.mu.Lock()
	idx := s.aggCalls
	s.aggCalls++
	var err error
	if idx < len(s.aggErrs) {
		err = s.aggErrs[idx]
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return s.inner.AggregateDistinctValues(ctx, fields)
}

type fakeConnector struct {
	collection port.ToolCollectionPort

	mu          sync.Mutex
	acquireErrs []error
	acquires    int
}

func (f *fakeConnector) Acquire(ctx context.Context) (port.ToolCollectionPort, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.acquires
	f.acquires++
	if idx < len(f.acquireErrs) && f.acquireErrs[idx] != nil {
		return nil, f.acquireErrs[idx]
	}
	return f.collection, nil
}

func (f *fakeConnector) Status(ctx context.Context) domain.StoreStatus {
	return domain.StoreStatus{Driver: "fake", Connected: true}
}

func (f *fakeConnector) Close(ctx context.Context) error { return nil }

func (f *fakeConnector) acquireCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acquires
}

// newTestRetry не спит между попытками, а только считает паузы
func newTestRetry(connector port.ToolStoreConnectorPort) (*BoundedRetry, *int) {
	waits := 0
	var mu sync.Mutex
	retry := NewBoundedRetry(connector, DefaultRetryDelay)
	retry.wait = func(ctx context.Context, d time.Duration) error {
		mu.Lock()
		waits++
		mu.Unlock()
		return ctx.Err()
	}
	return retry, &waits
}

func newSearchUseCase(connector port.ToolStoreConnectorPort, events port.SearchEventsPort) *SearchToolsUseCase {
	retry, _ := newTestRetry(connector)
	return NewSearchToolsUseCase(NewFilterCompiler(), NewQueryExecutor(retry), NewFacetAggregator(retry), events)
}

func newMemoryConnector(tools ...domain.Tool) *memory.Connector {
	return memory.NewConnector(memory.NewToolCollection(tools...))
}
