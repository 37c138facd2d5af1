package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"tool-catalog-service/internal/adapters/memory"
	"tool-catalog-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEvents struct {
	mu     sync.Mutex
	params []domain.SearchParams
	totals []int
	err    error
}

func (r *recordingEvents) SearchPerformed(ctx context.Context, params domain.SearchParams, totalResults int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.params = append(r.params, params)
	r.totals = append(r.totals, totalResults)
	return r.err
}

func TestSearchTools_AllSentinelsReturnsEverythingNewestFirst(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), nil)

	result, err := uc.Execute(context.Background(), domain.SearchParams{
		Category: "all", Availability: "all", Condition: "all", SortBy: "createdAt", SortOrder: "desc",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"t5", "t4", "t3", "t2", "t1"}, ids(result.Tools))
	assert.Equal(t, 5, result.TotalResults)
	assert.Equal(t, 5, result.FilterOptions.TotalTools)
}

func TestSearchTools_TextQuery(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), nil)

	result, err := uc.Execute(context.Background(), domain.SearchParams{Query: "DRILL", Category: "all"})

	require.NoError(t, err)
	// имя, описание или тег; регистр не важен
	assert.Equal(t, []string{"t4", "t1"}, ids(result.Tools))
	assert.NotContains(t, ids(result.Tools), "t2")
}

func TestSearchTools_TextQueryMatchesTagsOnly(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), nil)

	result, err := uc.Execute(context.Background(), domain.SearchParams{Query: "woodwork"})

	require.NoError(t, err)
	assert.Equal(t, []string{"t2"}, ids(result.Tools))
}

func TestSearchTools_TextQueryIsLiteral(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), nil)

	result, err := uc.Execute(context.Background(), domain.SearchParams{Query: "dr.ll"})

	require.NoError(t, err)
	assert.Empty(t, result.Tools)
}

func TestSearchTools_PartialLowercaseCity(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), nil)

	result, err := uc.Execute(context.Background(), domain.SearchParams{City: "colomb"})

	require.NoError(t, err)
	assert.Equal(t, []string{"t4", "t1"}, ids(result.Tools))
}

func TestSearchTools_LegacyStatusIsFoundByAvailability(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), nil)

	result, err := uc.Execute(context.Background(), domain.SearchParams{Availability: "borrowed"})

	require.NoError(t, err)
	assert.Equal(t, []string{"t3", "t2"}, ids(result.Tools))
	for _, tool := range result.Tools {
		assert.Equal(t, domain.AvailabilityBorrowed, tool.EffectiveAvailability())
	}
}

func TestSearchTools_AvailableUsesEffectiveAvailability(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), nil)

	result, err := uc.Execute(context.Background(), domain.SearchParams{Availability: "available", SortOrder: "asc", SortBy: "createdAt"})

	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t5"}, ids(result.Tools))
}

func TestSearchTools_TextAndAvailabilityStayIndependent(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), nil)

	// "drill" совпадает с t1 (available) и t4 (maintenance); borrowed - ни с одной
	result, err := uc.Execute(context.Background(), domain.SearchParams{Query: "drill", Availability: "borrowed"})

	require.NoError(t, err)
	assert.Empty(t, result.Tools)
	assert.Equal(t, 0, result.TotalResults)
}

func TestSearchTools_CategoryAndCondition(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), nil)

	result, err := uc.Execute(context.Background(), domain.SearchParams{Category: "Power Tools", Condition: "Good"})

	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, ids(result.Tools))
}

func TestSearchTools_SortByNameAscending(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), nil)

	result, err := uc.Execute(context.Background(), domain.SearchParams{SortBy: "name", SortOrder: "asc"})

	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t4", "t2", "t3", "t5"}, ids(result.Tools))
}

func TestSearchTools_FacetsCoverWholeCollection(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), nil)

	result, err := uc.Execute(context.Background(), domain.SearchParams{Query: "saw"})

	require.NoError(t, err)
	require.Len(t, result.Tools, 1)

	facets := result.FilterOptions
	assert.Equal(t, []string{"Cleaning", "Garden Tools", "Hand Tools", "Power Tools"}, facets.Categories)
	assert.Equal(t, []string{"Colombo", "Galle", "Kandy", "Matara", "colombo 7"}, facets.Cities)
	assert.Equal(t, []string{"Excellent", "Fair", "Good"}, facets.Conditions)
	assert.Equal(t, []string{"available", "borrowed", "maintenance"}, facets.Availabilities)
	assert.Equal(t, []string{"available", "borrowed", "maintenance"}, facets.Statuses)
	assert.Equal(t, 5, facets.TotalTools)
}

func TestSearchTools_EchoesParams(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), nil)
	params := domain.SearchParams{Query: "saw", Category: "all", SortBy: "bogus", SortOrder: "desc"}

	result, err := uc.Execute(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, params, result.Params)
}

func TestSearchTools_Idempotent(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), nil)
	params := domain.SearchParams{Query: "e", SortBy: "condition", SortOrder: "asc"}

	first, err := uc.Execute(context.Background(), params)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearchTools_EmptyCollection(t *testing.T) {
	uc := newSearchUseCase(newMemoryConnector(), nil)

	result, err := uc.Execute(context.Background(), domain.SearchParams{})

	require.NoError(t, err)
	assert.Equal(t, []domain.Tool{}, result.Tools)
	assert.Equal(t, 0, result.TotalResults)
	assert.Equal(t, domain.EmptyFacetOptions(), result.FilterOptions)
}

func TestSearchTools_TransientFailureThenSuccess(t *testing.T) {
	collection := &scriptedCollection{
		inner:    memory.NewToolCollection(sampleTools()...),
		findErrs: []error{domain.MarkTransient(errors.New("connection reset"))},
	}
	connector := &fakeConnector{collection: collection}
	uc := newSearchUseCase(connector, nil)

	result, err := uc.Execute(context.Background(), domain.SearchParams{Query: "drill"})

	require.NoError(t, err)
	assert.Equal(t, []string{"t4", "t1"}, ids(result.Tools))
	assert.Equal(t, 2, collection.findCalls)
}

func TestSearchTools_BothAttemptsFail(t *testing.T) {
	transient := domain.MarkTransient(errors.New("server selection timeout"))
	collection := &scriptedCollection{
		inner:    memory.NewToolCollection(sampleTools()...),
		findErrs: []error{transient, transient},
	}
	events := &recordingEvents{}
	uc := newSearchUseCase(&fakeConnector{collection: collection}, events)

	result, err := uc.Execute(context.Background(), domain.SearchParams{Query: "drill"})

	require.Nil(t, result)
	var execErr *domain.SearchExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, domain.StageFind, execErr.Stage)
	assert.Equal(t, 2, execErr.Attempts)
	assert.Empty(t, events.params)
}

func TestSearchTools_AggregationFailureIsFatal(t *testing.T) {
	collection := &scriptedCollection{
		inner:   memory.NewToolCollection(sampleTools()...),
		aggErrs: []error{errors.New("$group exceeded memory limit")},
	}
	uc := newSearchUseCase(&fakeConnector{collection: collection}, nil)

	_, err := uc.Execute(context.Background(), domain.SearchParams{})

	var execErr *domain.SearchExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, domain.StageAggregate, execErr.Stage)
}

func TestSearchTools_PublishesEventAndIgnoresPublishErrors(t *testing.T) {
	events := &recordingEvents{err: errors.New("broker down")}
	uc := newSearchUseCase(newMemoryConnector(sampleTools()...), events)
	params := domain.SearchParams{Query: "saw"}

	result, err := uc.Execute(context.Background(), params)

	require.NoError(t, err)
	require.Len(t, events.params, 1)
	assert.Equal(t, params, events.params[0])
	assert.Equal(t, result.TotalResults, events.totals[0])
}
