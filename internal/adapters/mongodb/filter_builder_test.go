package mongodb_adapter

import (
	"testing"
	"tool-catalog-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilter_MatchAll(t *testing.T) {
	filter, err := buildFilter(domain.MatchAll())
	require.NoError(t, err)
	assert.Equal(t, bson.D{}, filter)

	filter, err = buildFilter(nil)
	require.NoError(t, err)
	assert.Equal(t, bson.D{}, filter)
}

func TestBuildFilter_EmptyOrMatchesNothing(t *testing.T) {
	filter, err := buildFilter(domain.Or{})
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: bson.A{}}}}}, filter)
}

func TestBuildFilter_TextMatchEscapesInput(t *testing.T) {
	filter, err := buildFilter(domain.TextMatch{
		Fields: []domain.Field{domain.FieldName, domain.FieldTags},
		Text:   "18v (pro)",
	})
	require.NoError(t, err)

	regex := primitive.Regex{Pattern: `18v \(pro\)`, Options: "i"}
	assert.Equal(t, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "name", Value: regex}},
		bson.D{{Key: "tags", Value: regex}},
	}}}, filter)
}

func TestBuildFilter_EffectiveAvailability(t *testing.T) {
	predicate := domain.Or{Clauses: []domain.Predicate{
		domain.Equals{Field: domain.FieldAvailability, Value: "borrowed"},
		domain.And{Clauses: []domain.Predicate{
			domain.IsUnset{Field: domain.FieldAvailability},
			domain.Equals{Field: domain.FieldStatus, Value: "borrowed"},
		}},
	}}

	filter, err := buildFilter(predicate)
	require.NoError(t, err)

	unset := bson.D{{Key: "$in", Value: bson.A{nil, ""}}}
	assert.Equal(t, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "availability", Value: "borrowed"}},
		bson.D{{Key: "$and", Value: bson.A{
			bson.D{{Key: "availability", Value: unset}},
			bson.D{{Key: "status", Value: "borrowed"}},
		}}},
	}}}, filter)
}

func TestBuildFilter_SingleClauseIsUnwrapped(t *testing.T) {
	filter, err := buildFilter(domain.And{Clauses: []domain.Predicate{
		domain.SubstringMatch{Field: domain.FieldCity, Value: "colombo"},
	}})
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "location.city", Value: primitive.Regex{Pattern: "colombo", Options: "i"}}}, filter)
}

func TestBuildFilter_IDConvertsToObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	filter, err := buildFilter(domain.Equals{Field: domain.FieldID, Value: id.Hex()})
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "_id", Value: id}}, filter)

	_, err = buildFilter(domain.Equals{Field: domain.FieldID, Value: "not-an-id"})
	assert.Error(t, err)
}

func TestBuildSort(t *testing.T) {
	assert.Equal(t,
		bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}},
		buildSort(domain.DefaultSort()))
	assert.Equal(t,
		bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}},
		buildSort(domain.SortSpec{Field: domain.FieldName, Direction: domain.SortAscending}))
}

func TestDistinctPipeline(t *testing.T) {
	pipeline := distinctPipeline([]domain.Field{domain.FieldCategory, domain.FieldCity})
	require.Len(t, pipeline, 1)
	assert.Equal(t, bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: nil},
		{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "category", Value: bson.D{{Key: "$addToSet", Value: "$category"}}},
		{Key: "location_city", Value: bson.D{{Key: "$addToSet", Value: "$location.city"}}},
	}}}, pipeline[0])
}

func TestDecodeDistinctRow(t *testing.T) {
	fields := []domain.Field{domain.FieldCity, domain.FieldStatus, domain.FieldTags}
	row := bson.M{
		"total":         int32(4),
		"location_city": bson.A{"Kandy", "Colombo", ""},
		"status":        bson.A{nil, "borrowed"},
		"tags":          bson.A{bson.A{"saw", "wood"}, bson.A{"drill"}, bson.A{"wood"}},
	}

	values := decodeDistinctRow(row, fields)
	assert.Equal(t, 4, values.Total)
	assert.Equal(t, []string{"Colombo", "Kandy"}, values.Values[domain.FieldCity])
	assert.Equal(t, []string{"borrowed"}, values.Values[domain.FieldStatus])
	assert.Equal(t, []string{"drill", "saw", "wood"}, values.Values[domain.FieldTags])
}

func TestDecodeDistinctRow_EmptyCollection(t *testing.T) {
	values := decodeDistinctRow(nil, []domain.Field{domain.FieldCategory})
	assert.Equal(t, 0, values.Total)
	assert.Equal(t, []string{}, values.Values[domain.FieldCategory])
}
