package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"tool-catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

// ToolCollection - коллекция в памяти процесса. Используется при STORE_DRIVER=memory и в тестах.
type ToolCollection struct {
	mu    sync.RWMutex
	tools []domain.Tool
}

func NewToolCollection(tools ...domain.Tool) *ToolCollection {
	c := &ToolCollection{}
	_, _ = c.InsertMany(context.Background(), tools)
	return c
}

func (c *ToolCollection) Find(ctx context.Context, predicate domain.Predicate, sortSpec domain.SortSpec) ([]domain.Tool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	eval := newEvaluator()
	found := make([]domain.Tool, 0)
	for _, tool := range c.tools {
		if eval.matches(predicate, tool) {
			found = append(found, cloneTool(tool))
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		cmp := compareField(found[i], found[j], sortSpec.Field)
		if cmp == 0 {
			return found[i].ID < found[j].ID
		}
		if sortSpec.Direction == domain.SortAscending {
			return cmp < 0
		}
		return cmp > 0
	})

	return found, nil
}

func (c *ToolCollection) AggregateDistinctValues(ctx context.Context, fields []domain.Field) (*domain.DistinctValues, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	result := &domain.DistinctValues{
		Values: make(map[domain.Field][]string, len(fields)),
		Total:  len(c.tools),
	}
	for _, field := range fields {
		var values []string
		for _, tool := range c.tools {
			values = append(values, fieldValues(tool, field)...)
		}
		result.Values[field] = domain.DistinctSorted(values)
	}
	return result, nil
}

// EnsureIndexes - индексов в памяти нет
func (c *ToolCollection) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (c *ToolCollection) InsertMany(ctx context.Context, tools []domain.Tool) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, tool := range tools {
		if tool.ID == "" {
			tool.ID = uuid.NewString()
		}
		c.tools = append(c.tools, cloneTool(tool))
	}
	return len(tools), nil
}

func (c *ToolCollection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tools)
}

func compareField(a, b domain.Tool, field domain.Field) int {
	switch field {
	case domain.FieldCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case domain.FieldUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return strings.Compare(firstValue(a, field), firstValue(b, field))
	}
}

func firstValue(tool domain.Tool, field domain.Field) string {
	values := fieldValues(tool, field)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// cloneTool копирует срезы, чтобы вызывающий код не мог изменить хранимую запись
func cloneTool(tool domain.Tool) domain.Tool {
	tool.Tags = append([]string(nil), tool.Tags...)
	tool.Images = append([]string(nil), tool.Images...)
	return tool
}
