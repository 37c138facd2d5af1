package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelect_Sentinels(t *testing.T) {
	for _, raw := range []string{"", "   ", "all", "ALL", " All "} {
		assert.False(t, ParseSelect(raw).IsSet(), "raw=%q", raw)
	}

	v, ok := ParseSelect(" borrowed ").Get()
	require.True(t, ok)
	assert.Equal(t, "borrowed", v)
}

func TestParseText_AllIsARealQuery(t *testing.T) {
	v, ok := ParseText("all").Get()
	require.True(t, ok)
	assert.Equal(t, "all", v)
	assert.False(t, ParseText(" \t ").IsSet())
}

func TestFilterValue_EmptyValueDiffersFromNoFilter(t *testing.T) {
	assert.True(t, Value("").IsSet())
	assert.False(t, NoFilter().IsSet())
	assert.False(t, FilterValue{}.IsSet())
}

func TestParseCategory_CanonicalizesAndDropsGarbage(t *testing.T) {
	v, ok := ParseCategory("power tools").Get()
	require.True(t, ok)
	assert.Equal(t, string(CategoryPowerTools), v)

	assert.False(t, ParseCategory("spaceships").IsSet())
	assert.False(t, ParseCategory("all").IsSet())
}

func TestParseAvailabilityAndCondition(t *testing.T) {
	v, ok := ParseAvailability("Borrowed").Get()
	require.True(t, ok)
	assert.Equal(t, "borrowed", v)
	assert.False(t, ParseAvailability("lost").IsSet())

	v, ok = ParseCondition("fair").Get()
	require.True(t, ok)
	assert.Equal(t, "Fair", v)
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      SortSpec
	}{
		{"defaults", "", "", SortSpec{FieldCreatedAt, SortDescending}},
		{"unknown key falls back to newest first", "price", "asc", SortSpec{FieldCreatedAt, SortDescending}},
		{"name asc", "name", "asc", SortSpec{FieldName, SortAscending}},
		{"name with garbage order", "name", "sideways", SortSpec{FieldName, SortDescending}},
		{"city alias", "city", "ASC", SortSpec{FieldCity, SortAscending}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSort(tt.sortBy, tt.sortOrder))
		})
	}
}

func TestNewSearchRequest_AllSentinels(t *testing.T) {
	req := NewSearchRequest(SearchParams{Category: "all", Availability: "all", Condition: "all"})

	assert.False(t, req.Query.IsSet())
	assert.False(t, req.Category.IsSet())
	assert.False(t, req.City.IsSet())
	assert.False(t, req.Availability.IsSet())
	assert.False(t, req.Condition.IsSet())
	assert.Equal(t, DefaultSort(), req.Sort)
}

func TestMergeAvailabilities(t *testing.T) {
	merged := MergeAvailabilities(
		[]string{"available", "borrowed", ""},
		[]string{"borrowed", "maintenance", "available"},
	)
	assert.Equal(t, []string{"available", "borrowed", "maintenance"}, merged)
	assert.Equal(t, []string{}, MergeAvailabilities(nil, nil))
}
