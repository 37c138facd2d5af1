package mongodb_adapter

import (
	"fmt"
	"regexp"
	"tool-catalog-service/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// buildFilter переводит дерево предикатов в фильтр MongoDB.
// Логические имена полей совпадают с путями в документе.
func buildFilter(predicate domain.Predicate) (bson.D, error) {
	switch p := predicate.(type) {
	case nil:
		return bson.D{}, nil

	case domain.And:
		return combine("$and", p.Clauses, bson.D{})

	case domain.Or:
		// пустой $or недопустим, а пустой $in не совпадает ни с чем
		return combine("$or", p.Clauses, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: bson.A{}}}}})

	case domain.Equals:
		value, err := fieldValue(p.Field, p.Value)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: string(p.Field), Value: value}}, nil

	case domain.SubstringMatch:
		return bson.D{{Key: string(p.Field), Value: literalRegex(p.Value)}}, nil

	case domain.TextMatch:
		clauses := make([]domain.Predicate, 0, len(p.Fields))
		for _, field := range p.Fields {
			clauses = append(clauses, domain.SubstringMatch{Field: field, Value: p.Text})
		}
		return buildFilter(domain.Or{Clauses: clauses})

	case domain.IsUnset:
		// $in с null совпадает и с отсутствующим полем
		return bson.D{{Key: string(p.Field), Value: bson.D{{Key: "$in", Value: bson.A{nil, ""}}}}}, nil

	default:
		return nil, fmt.Errorf("unsupported predicate node %T", predicate)
	}
}

func combine(operator string, clauses []domain.Predicate, empty bson.D) (bson.D, error) {
	switch len(clauses) {
	case 0:
		return empty, nil
	case 1:
		return buildFilter(clauses[0])
	}

	parts := make(bson.A, 0, len(clauses))
	for _, clause := range clauses {
		part, err := buildFilter(clause)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return bson.D{{Key: operator, Value: parts}}, nil
}

// literalRegex - регистронезависимый поиск подстроки, спецсимволы экранируются
func literalRegex(text string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
}

func fieldValue(field domain.Field, value string) (interface{}, error) {
	if field != domain.FieldID {
		return value, nil
	}
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return nil, fmt.Errorf("invalid tool id %q: %w", value, err)
	}
	return id, nil
}

// buildSort - сортировка с _id по возрастанию для стабильного порядка
func buildSort(spec domain.SortSpec) bson.D {
	direction := -1
	if spec.Direction == domain.SortAscending {
		direction = 1
	}
	sort := bson.D{{Key: string(spec.Field), Value: direction}}
	if spec.Field != domain.FieldID {
		sort = append(sort, bson.E{Key: "_id", Value: 1})
	}
	return sort
}
