package mongodb_adapter

import (
	"context"
	"fmt"
	"strings"
	"tool-catalog-service/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ToolCollection реализует port.ToolCollectionPort и port.ToolSeederPort поверх коллекции tools
type ToolCollection struct {
	coll *mongo.Collection
	// onTransient вызывается при временной ошибке, чтобы коннектор перепроверил соединение
	onTransient func()
}

func NewToolCollection(coll *mongo.Collection, onTransient func()) *ToolCollection {
	if onTransient == nil {
		onTransient = func() {}
	}
	return &ToolCollection{coll: coll, onTransient: onTransient}
}

func (c *ToolCollection) Find(ctx context.Context, predicate domain.Predicate, sort domain.SortSpec) ([]domain.Tool, error) {
	filter, err := buildFilter(predicate)
	if err != nil {
		return nil, fmt.Errorf("failed to build mongodb filter: %w", err)
	}

	cursor, err := c.coll.Find(ctx, filter, options.Find().SetSort(buildSort(sort)))
	if err != nil {
		return nil, c.wrap("find tools", err)
	}
	defer cursor.Close(ctx)

	var docs []toolDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, c.wrap("decode tools", err)
	}

	tools := make([]domain.Tool, 0, len(docs))
	for _, doc := range docs {
		tools = append(tools, doc.toDomain())
	}
	return tools, nil
}

// AggregateDistinctValues собирает уникальные значения полей одним $group по всей коллекции
func (c *ToolCollection) AggregateDistinctValues(ctx context.Context, fields []domain.Field) (*domain.DistinctValues, error) {
	cursor, err := c.coll.Aggregate(ctx, distinctPipeline(fields))
	if err != nil {
		return nil, c.wrap("aggregate distinct values", err)
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, c.wrap("decode distinct values", err)
	}

	var row bson.M
	if len(rows) > 0 {
		row = rows[0]
	}
	return decodeDistinctRow(row, fields), nil
}

func (c *ToolCollection) EnsureIndexes(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}, {Key: "tags", Value: "text"}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "location.city", Value: 1}}},
		{Keys: bson.D{{Key: "availability", Value: 1}}},
		{Keys: bson.D{{Key: "owner.email", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return c.wrap("create indexes", err)
	}
	return nil
}

func (c *ToolCollection) InsertMany(ctx context.Context, tools []domain.Tool) (int, error) {
	if len(tools) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(tools))
	for _, tool := range tools {
		doc, err := documentFromDomain(tool)
		if err != nil {
			return 0, err
		}
		docs = append(docs, doc)
	}

	res, err := c.coll.InsertMany(ctx, docs)
	if err != nil {
		inserted := 0
		if res != nil {
			inserted = len(res.InsertedIDs)
		}
		return inserted, c.wrap("insert tools", err)
	}
	return len(res.InsertedIDs), nil
}

func (c *ToolCollection) wrap(op string, err error) error {
	classified := classifyError(err)
	if domain.IsTransient(classified) {
		c.onTransient()
	}
	return fmt.Errorf("mongodb %s: %w", op, classified)
}

// groupKey - в именах полей $group точки недопустимы
func groupKey(field domain.Field) string {
	return strings.ReplaceAll(string(field), ".", "_")
}

func distinctPipeline(fields []domain.Field) mongo.Pipeline {
	group := bson.D{
		{Key: "_id", Value: nil},
		{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
	}
	for _, field := range fields {
		group = append(group, bson.E{Key: groupKey(field), Value: bson.D{{Key: "$addToSet", Value: "$" + string(field)}}})
	}
	return mongo.Pipeline{{{Key: "$group", Value: group}}}
}

// decodeDistinctRow разбирает результат $group. Пустая коллекция даёт nil row.
// Массивы (tags) раскрываются, null и нестроковые значения отбрасываются.
func decodeDistinctRow(row bson.M, fields []domain.Field) *domain.DistinctValues {
	result := &domain.DistinctValues{
		Values: make(map[domain.Field][]string, len(fields)),
		Total:  toInt(row["total"]),
	}
	for _, field := range fields {
		var values []string
		collectStrings(row[groupKey(field)], &values)
		result.Values[field] = domain.DistinctSorted(values)
	}
	return result
}

func collectStrings(raw interface{}, out *[]string) {
	switch v := raw.(type) {
	case string:
		*out = append(*out, v)
	case bson.A:
		for _, item := range v {
			collectStrings(item, out)
		}
	case []interface{}:
		for _, item := range v {
			collectStrings(item, out)
		}
	}
}

func toInt(raw interface{}) int {
	switch v := raw.(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
