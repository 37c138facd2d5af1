package rest

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"tool-catalog-service/internal/core/domain"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, map[string]string{"error": message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// searchParamsFromQuery читает параметры поиска как есть. q имеет приоритет над query,
// для sortBy и sortOrder подставляются значения по умолчанию.
func searchParamsFromQuery(values url.Values) domain.SearchParams {
	query := values.Get("q")
	if query == "" {
		query = values.Get("query")
	}
	return domain.SearchParams{
		Query:        query,
		Category:     values.Get("category"),
		City:         values.Get("city"),
		Availability: values.Get("availability"),
		Condition:    values.Get("condition"),
		SortBy:       getOrDefault(values, "sortBy", "createdAt"),
		SortOrder:    getOrDefault(values, "sortOrder", "desc"),
	}
}

func getOrDefault(values url.Values, key, defaultValue string) string {
	if v := strings.TrimSpace(values.Get(key)); v != "" {
		return v
	}
	return defaultValue
}
