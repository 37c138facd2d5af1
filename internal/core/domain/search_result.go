package domain

import "sort"

// FacetOptions - значения для выпадающих фильтров по всей коллекции
type FacetOptions struct {
	Categories     []string
	Cities         []string
	Conditions     []string
	Availabilities []string // availability и legacy status вместе
	Statuses       []string
	TotalTools     int
}

func EmptyFacetOptions() FacetOptions {
	return FacetOptions{
		Categories:     []string{},
		Cities:         []string{},
		Conditions:     []string{},
		Availabilities: []string{},
		Statuses:       []string{},
	}
}

// DistinctValues - результат группировки коллекции по набору полей
type DistinctValues struct {
	Values map[Field][]string
	Total  int
}

// SearchResult - конверт ответа поиска
type SearchResult struct {
	Tools         []Tool
	FilterOptions FacetOptions
	Params        SearchParams
	TotalResults  int
}

// MergeAvailabilities объединяет значения availability и legacy status без дублей.
// Пустые значения отбрасываются, результат отсортирован.
func MergeAvailabilities(availabilities, statuses []string) []string {
	return DistinctSorted(availabilities, statuses)
}

// DistinctSorted склеивает списки, убирает пустые строки и дубли
func DistinctSorted(lists ...[]string) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0)
	for _, list := range lists {
		for _, v := range list {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}
	sort.Strings(result)
	return result
}
