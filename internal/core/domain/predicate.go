package domain

// Field - логическое имя атрибута записи. Адаптеры хранилищ сами переводят его
// в имя колонки или путь в документе.
type Field string

const (
	FieldID           Field = "_id"
	FieldName         Field = "name"
	FieldDescription  Field = "description"
	FieldTags         Field = "tags"
	FieldCategory     Field = "category"
	FieldCondition    Field = "condition"
	FieldCity         Field = "location.city"
	FieldArea         Field = "location.area"
	FieldAvailability Field = "availability"
	FieldStatus       Field = "status" // legacy-поле доступности
	FieldCreatedAt    Field = "createdAt"
	FieldUpdatedAt    Field = "updatedAt"
)

// Predicate - узел декларативного дерева фильтра.
// Реализации: TextMatch, Equals, SubstringMatch, IsUnset, Or, And.
type Predicate interface {
	predicateNode()
}

// TextMatch - регистронезависимый поиск подстроки хотя бы в одном из полей.
// Для полей-массивов (tags) достаточно совпадения с любым элементом.
type TextMatch struct {
	Fields []Field
	Text   string
}

// Equals - точное совпадение значения поля
type Equals struct {
	Field Field
	Value string
}

// SubstringMatch - регистронезависимый поиск подстроки в одном поле
type SubstringMatch struct {
	Field Field
	Value string
}

// IsUnset - поле отсутствует, равно null или пустой строке
type IsUnset struct {
	Field Field
}

type Or struct {
	Clauses []Predicate
}

// And без условий совпадает со всеми записями
type And struct {
	Clauses []Predicate
}

func (TextMatch) predicateNode()      {}
func (Equals) predicateNode()         {}
func (SubstringMatch) predicateNode() {}
func (IsUnset) predicateNode()        {}
func (Or) predicateNode()             {}
func (And) predicateNode()            {}

// MatchAll - предикат без ограничений
func MatchAll() Predicate {
	return And{}
}
