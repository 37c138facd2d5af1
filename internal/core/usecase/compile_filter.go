package usecase

import (
	"tool-catalog-service/internal/core/domain"
)

// Поля, по которым идёт свободный текстовый поиск
var textSearchFields = []domain.Field{domain.FieldName, domain.FieldDescription, domain.FieldTags}

// FilterCompiler переводит разобранный запрос в дерево предикатов,
// не зная ничего о синтаксисе конкретного хранилища.
type FilterCompiler struct{}

func NewFilterCompiler() *FilterCompiler {
	return &FilterCompiler{}
}

// Compile собирает все активные фильтры через AND. Каждый фильтр занимает ровно
// один слот, поэтому OR текстового поиска и OR доступности никогда не сливаются.
func (c *FilterCompiler) Compile(req domain.SearchRequest) domain.Predicate {
	clauses := make([]domain.Predicate, 0, 5)

	if text, ok := req.Query.Get(); ok {
		clauses = append(clauses, domain.TextMatch{Fields: textSearchFields, Text: text})
	}

	if category, ok := req.Category.Get(); ok {
		clauses = append(clauses, domain.Equals{Field: domain.FieldCategory, Value: category})
	}

	if city, ok := req.City.Get(); ok {
		clauses = append(clauses, domain.SubstringMatch{Field: domain.FieldCity, Value: city})
	}

	if availability, ok := req.Availability.Get(); ok {
		clauses = append(clauses, effectiveAvailabilityClause(availability))
	}

	if condition, ok := req.Condition.Get(); ok {
		clauses = append(clauses, domain.Equals{Field: domain.FieldCondition, Value: condition})
	}

	return domain.And{Clauses: clauses}
}

// effectiveAvailabilityClause ищет значение и в availability, и в legacy status.
// status учитывается только когда availability не заполнено.
func effectiveAvailabilityClause(value string) domain.Predicate {
	clauses := []domain.Predicate{
		domain.Equals{Field: domain.FieldAvailability, Value: value},
		domain.And{Clauses: []domain.Predicate{
			domain.IsUnset{Field: domain.FieldAvailability},
			domain.Equals{Field: domain.FieldStatus, Value: value},
		}},
	}

	// Запись без обоих полей считается доступной
	if value == string(domain.AvailabilityAvailable) {
		clauses = append(clauses, domain.And{Clauses: []domain.Predicate{
			domain.IsUnset{Field: domain.FieldAvailability},
			domain.IsUnset{Field: domain.FieldStatus},
		}})
	}

	return domain.Or{Clauses: clauses}
}
