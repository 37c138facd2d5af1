package rest

import (
	"errors"
	"net/http"
	"tool-catalog-service/internal/contextkeys"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"
	usecases_port "tool-catalog-service/internal/core/port/usecases_port"
)

type SearchHandler struct {
	searchToolsUC      usecases_port.SearchToolsUseCase
	getFilterOptionsUC usecases_port.GetFilterOptionsUseCase
}

func NewSearchHandler(searchToolsUC usecases_port.SearchToolsUseCase,
	getFilterOptionsUC usecases_port.GetFilterOptionsUseCase) *SearchHandler {
	return &SearchHandler{
		searchToolsUC:      searchToolsUC,
		getFilterOptionsUC: getFilterOptionsUC,
	}
}

// SearchTools - GET /api/v1/tools/search. Параметры никогда не отклоняются;
// при ошибке выполнения отдается пустой конверт со статусом 500 или 503.
func (h *SearchHandler) SearchTools(w http.ResponseWriter, r *http.Request) {
	params := searchParamsFromQuery(r.URL.Query())

	result, err := h.searchToolsUC.Execute(r.Context(), params)
	if err != nil {
		status := errorStatus(err)
		contextkeys.LoggerFromContext(r.Context()).Warn("Responding with degraded search envelope", port.Fields{
			"status_code": status,
		})
		RespondWithJSON(w, status, newSearchFailedResponse(params, "Failed to search tools"))
		return
	}

	RespondWithJSON(w, http.StatusOK, toSearchToolsResponse(result))
}

// GetFilterOptions - GET /api/v1/tools/filter-options
func (h *SearchHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.getFilterOptionsUC.Execute(r.Context())
	if err != nil {
		WriteJSONError(w, errorStatus(err), "Failed to get filter options")
		return
	}
	RespondWithJSON(w, http.StatusOK, toFilterOptionsResponse(*options))
}

func errorStatus(err error) int {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
