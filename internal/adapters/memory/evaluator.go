package memory

import (
	"strings"
	"tool-catalog-service/internal/core/domain"

	"golang.org/x/text/cases"
)

// evaluator проверяет запись на соответствие дереву предикатов.
// cases.Caser хранит состояние, поэтому evaluator создаётся на каждый запрос.
type evaluator struct {
	fold cases.Caser
}

func newEvaluator() *evaluator {
	return &evaluator{fold: cases.Fold()}
}

func (e *evaluator) matches(predicate domain.Predicate, tool domain.Tool) bool {
	switch p := predicate.(type) {
	case nil:
		return true
	case domain.And:
		for _, clause := range p.Clauses {
			if !e.matches(clause, tool) {
				return false
			}
		}
		return true
	case domain.Or:
		for _, clause := range p.Clauses {
			if e.matches(clause, tool) {
				return true
			}
		}
		return false
	case domain.Equals:
		for _, v := range fieldValues(tool, p.Field) {
			if v == p.Value {
				return true
			}
		}
		return false
	case domain.SubstringMatch:
		return e.containsAny(fieldValues(tool, p.Field), p.Value)
	case domain.TextMatch:
		for _, field := range p.Fields {
			if e.containsAny(fieldValues(tool, field), p.Text) {
				return true
			}
		}
		return false
	case domain.IsUnset:
		for _, v := range fieldValues(tool, p.Field) {
			if v != "" {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (e *evaluator) containsAny(values []string, needle string) bool {
	folded := e.fold.String(needle)
	for _, v := range values {
		if strings.Contains(e.fold.String(v), folded) {
			return true
		}
	}
	return false
}

// fieldValues возвращает сырые значения поля; для tags - все элементы
func fieldValues(tool domain.Tool, field domain.Field) []string {
	switch field {
	case domain.FieldID:
		return []string{tool.ID}
	case domain.FieldName:
		return []string{tool.Name}
	case domain.FieldDescription:
		return []string{tool.Description}
	case domain.FieldTags:
		return tool.Tags
	case domain.FieldCategory:
		return []string{string(tool.Category)}
	case domain.FieldCondition:
		return []string{string(tool.Condition)}
	case domain.FieldCity:
		return []string{tool.Location.City}
	case domain.FieldArea:
		return []string{tool.Location.Area}
	case domain.FieldAvailability:
		return []string{string(tool.Availability)}
	case domain.FieldStatus:
		return []string{tool.Status}
	default:
		return nil
	}
}
