package domain

import "strings"

const allSentinel = "all"

// FilterValue - значение фильтра: либо "нет фильтра", либо конкретное значение.
// Нулевое значение означает отсутствие фильтра.
type FilterValue struct {
	value string
	set   bool
}

func NoFilter() FilterValue {
	return FilterValue{}
}

func Value(v string) FilterValue {
	return FilterValue{value: v, set: true}
}

// Get возвращает значение и признак того, что фильтр активен
func (f FilterValue) Get() (string, bool) {
	return f.value, f.set
}

func (f FilterValue) IsSet() bool {
	return f.set
}

func (f FilterValue) String() string {
	if !f.set {
		return "<none>"
	}
	return f.value
}

// ParseText: пустая строка или одни пробелы - нет фильтра
func ParseText(raw string) FilterValue {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NoFilter()
	}
	return Value(trimmed)
}

// ParseSelect разбирает значение из выпадающего списка: "all" и пустая строка - нет фильтра
func ParseSelect(raw string) FilterValue {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, allSentinel) {
		return NoFilter()
	}
	return Value(trimmed)
}

// parseEnum приводит значение к каноническому виду из закрытого списка.
// Значения вне списка превращаются в "нет фильтра".
func parseEnum[T ~string](raw string, allowed []T) FilterValue {
	v, ok := ParseSelect(raw).Get()
	if !ok {
		return NoFilter()
	}
	for _, candidate := range allowed {
		if strings.EqualFold(v, string(candidate)) {
			return Value(string(candidate))
		}
	}
	return NoFilter()
}

func ParseCategory(raw string) FilterValue {
	return parseEnum(raw, Categories())
}

func ParseCondition(raw string) FilterValue {
	return parseEnum(raw, Conditions())
}

func ParseAvailability(raw string) FilterValue {
	return parseEnum(raw, Availabilities())
}

type SortDirection int

const (
	SortDescending SortDirection = iota
	SortAscending
)

func (d SortDirection) String() string {
	if d == SortAscending {
		return "asc"
	}
	return "desc"
}

type SortSpec struct {
	Field     Field
	Direction SortDirection
}

// DefaultSort - сначала новые
func DefaultSort() SortSpec {
	return SortSpec{Field: FieldCreatedAt, Direction: SortDescending}
}

var sortableFields = map[string]Field{
	"createdAt":     FieldCreatedAt,
	"updatedAt":     FieldUpdatedAt,
	"name":          FieldName,
	"category":      FieldCategory,
	"condition":     FieldCondition,
	"city":          FieldCity,
	"location.city": FieldCity,
	"availability":  FieldAvailability,
}

// ParseSort: неизвестный или пустой ключ сортировки даёт createdAt по убыванию
func ParseSort(sortBy, sortOrder string) SortSpec {
	field, ok := sortableFields[strings.TrimSpace(sortBy)]
	if !ok {
		return DefaultSort()
	}
	direction := SortDescending
	if strings.EqualFold(strings.TrimSpace(sortOrder), "asc") {
		direction = SortAscending
	}
	return SortSpec{Field: field, Direction: direction}
}

// SearchParams - сырые параметры запроса в том виде, в каком их прислал клиент.
// Возвращаются в ответе для отладки на клиенте.
type SearchParams struct {
	Query        string
	Category     string
	City         string
	Availability string
	Condition    string
	SortBy       string
	SortOrder    string
}

// SearchRequest - разобранный запрос поиска
type SearchRequest struct {
	Query        FilterValue
	Category     FilterValue
	City         FilterValue
	Availability FilterValue
	Condition    FilterValue
	Sort         SortSpec
}

// NewSearchRequest никогда не отклоняет параметры: мусор превращается в "нет фильтра".
func NewSearchRequest(params SearchParams) SearchRequest {
	return SearchRequest{
		Query:        ParseText(params.Query),
		Category:     ParseCategory(params.Category),
		City:         ParseText(params.City),
		Availability: ParseAvailability(params.Availability),
		Condition:    ParseCondition(params.Condition),
		Sort:         ParseSort(params.SortBy, params.SortOrder),
	}
}
