package postgres_adapter

import (
	"fmt"
	"strings"
	"tool-catalog-service/internal/core/domain"
)

// columns сопоставляет логические поля колонкам таблицы tools
var columns = map[domain.Field]string{
	domain.FieldID:           "id",
	domain.FieldName:         "name",
	domain.FieldDescription:  "description",
	domain.FieldTags:         "tags",
	domain.FieldCategory:     "category",
	domain.FieldCondition:    "condition",
	domain.FieldCity:         "city",
	domain.FieldArea:         "area",
	domain.FieldAvailability: "availability",
	domain.FieldStatus:       "status",
	domain.FieldCreatedAt:    "created_at",
	domain.FieldUpdatedAt:    "updated_at",
}

const selectColumns = `id, name, description, category, condition, city, area, postal_code,
	owner_name, owner_email, owner_phone, availability, status,
	max_duration_days, deposit, instructions, images, tags, created_at, updated_at`

type queryBuilder struct {
	args  []interface{}
	argId int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addArg(arg interface{}) string {
	placeholder := fmt.Sprintf("$%d", qb.argId)
	qb.args = append(qb.args, arg)
	qb.argId++
	return placeholder
}

func column(field domain.Field) (string, error) {
	col, ok := columns[field]
	if !ok {
		return "", fmt.Errorf("unknown field %q", field)
	}
	return col, nil
}

// where рекурсивно собирает условие WHERE из дерева предикатов
func (qb *queryBuilder) where(predicate domain.Predicate) (string, error) {
	switch p := predicate.(type) {
	case nil:
		return "TRUE", nil

	case domain.And:
		return qb.join(p.Clauses, " AND ", "TRUE")

	case domain.Or:
		return qb.join(p.Clauses, " OR ", "FALSE")

	case domain.Equals:
		col, err := column(p.Field)
		if err != nil {
			return "", err
		}
		if p.Field == domain.FieldTags {
			return fmt.Sprintf("%s = ANY(%s)", qb.addArg(p.Value), col), nil
		}
		return fmt.Sprintf("%s = %s", col, qb.addArg(p.Value)), nil

	case domain.SubstringMatch:
		col, err := column(p.Field)
		if err != nil {
			return "", err
		}
		pattern := "%" + escapeLike(p.Value) + "%"
		if p.Field == domain.FieldTags {
			return fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(%s) AS tag WHERE tag ILIKE %s)", col, qb.addArg(pattern)), nil
		}
		return fmt.Sprintf("%s ILIKE %s", col, qb.addArg(pattern)), nil

	case domain.TextMatch:
		clauses := make([]domain.Predicate, 0, len(p.Fields))
		for _, field := range p.Fields {
			clauses = append(clauses, domain.SubstringMatch{Field: field, Value: p.Text})
		}
		return qb.where(domain.Or{Clauses: clauses})

	case domain.IsUnset:
		col, err := column(p.Field)
		if err != nil {
			return "", err
		}
		if p.Field == domain.FieldTags {
			return fmt.Sprintf("cardinality(%s) = 0", col), nil
		}
		return fmt.Sprintf("(%s IS NULL OR %s = '')", col, col), nil

	default:
		return "", fmt.Errorf("unsupported predicate node %T", predicate)
	}
}

func (qb *queryBuilder) join(clauses []domain.Predicate, sep, empty string) (string, error) {
	switch len(clauses) {
	case 0:
		return empty, nil
	case 1:
		return qb.where(clauses[0])
	}

	parts := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		part, err := qb.where(clause)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

// orderBy - текстовые колонки сравниваются побайтно (COLLATE "C"), id разрешает равенство
func orderBy(spec domain.SortSpec) (string, error) {
	col, err := column(spec.Field)
	if err != nil {
		return "", err
	}
	direction := "DESC"
	if spec.Direction == domain.SortAscending {
		direction = "ASC"
	}
	if spec.Field != domain.FieldCreatedAt && spec.Field != domain.FieldUpdatedAt {
		col += ` COLLATE "C"`
	}
	if spec.Field == domain.FieldID {
		return fmt.Sprintf("ORDER BY %s %s", col, direction), nil
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", col, direction), nil
}

// buildFindQuery возвращает готовый SELECT и аргументы к нему
func buildFindQuery(predicate domain.Predicate, sort domain.SortSpec) (string, []interface{}, error) {
	qb := newQueryBuilder()
	whereClause, err := qb.where(predicate)
	if err != nil {
		return "", nil, err
	}
	orderClause, err := orderBy(sort)
	if err != nil {
		return "", nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM tools WHERE %s %s", selectColumns, whereClause, orderClause)
	return query, qb.args, nil
}

// buildDistinctQuery - одна строка: COUNT(*) и массив уникальных непустых значений на каждое поле
func buildDistinctQuery(fields []domain.Field) (string, error) {
	parts := []string{"COUNT(*)"}
	for _, field := range fields {
		col, err := column(field)
		if err != nil {
			return "", err
		}
		if field == domain.FieldTags {
			parts = append(parts,
				"(SELECT COALESCE(array_agg(DISTINCT tag), '{}') FROM tools, unnest(tools.tags) AS tag WHERE tag <> '')")
			continue
		}
		parts = append(parts, fmt.Sprintf(
			"COALESCE(array_agg(DISTINCT %s) FILTER (WHERE %s IS NOT NULL AND %s <> ''), '{}')", col, col, col))
	}
	return fmt.Sprintf("SELECT %s FROM tools", strings.Join(parts, ", ")), nil
}

// escapeLike экранирует спецсимволы ILIKE, чтобы ввод пользователя искался буквально
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
