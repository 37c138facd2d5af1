package rest

import (
	"time"
	"tool-catalog-service/internal/core/domain"
)

type LocationResponse struct {
	City       string `json:"city"`
	Area       string `json:"area"`
	PostalCode string `json:"postalCode,omitempty"`
}

type OwnerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type BorrowingTermsResponse struct {
	MaxDuration  int     `json:"maxDuration"`
	Deposit      float64 `json:"deposit"`
	Instructions string  `json:"instructions,omitempty"`
}

// ToolResponse - запись каталога в ответе. availability всегда заполнено
// (с учетом legacy status), сам status отдается только если он есть в записи.
type ToolResponse struct {
	ID             string                 `json:"_id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Category       string                 `json:"category"`
	Condition      string                 `json:"condition"`
	Location       LocationResponse       `json:"location"`
	Owner          OwnerResponse          `json:"owner"`
	Availability   string                 `json:"availability"`
	Status         string                 `json:"status,omitempty"`
	BorrowingTerms BorrowingTermsResponse `json:"borrowingTerms"`
	Images         []string               `json:"images"`
	Tags           []string               `json:"tags"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

type FilterOptionsResponse struct {
	Categories     []string `json:"categories"`
	Cities         []string `json:"cities"`
	Conditions     []string `json:"conditions"`
	Availabilities []string `json:"availabilities"`
	Statuses       []string `json:"statuses"`
	TotalTools     int      `json:"totalTools"`
}

type SearchParamsResponse struct {
	Query        string `json:"query"`
	Category     string `json:"category"`
	City         string `json:"city"`
	Availability string `json:"availability"`
	Condition    string `json:"condition"`
	SortBy       string `json:"sortBy"`
	SortOrder    string `json:"sortOrder"`
}

type SearchToolsResponse struct {
	Tools         []ToolResponse        `json:"tools"`
	FilterOptions FilterOptionsResponse `json:"filterOptions"`
	SearchParams  SearchParamsResponse  `json:"searchParams"`
	TotalResults  int                   `json:"totalResults"`
}

// SearchFailedResponse - тот же конверт, но пустой и с полем error
type SearchFailedResponse struct {
	Error         string               `json:"error"`
	Tools         []ToolResponse       `json:"tools"`
	FilterOptions struct{}             `json:"filterOptions"`
	SearchParams  SearchParamsResponse `json:"searchParams"`
	TotalResults  int                  `json:"totalResults"`
}

type StoreStatusResponse struct {
	Driver    string `json:"driver"`
	Connected bool   `json:"connected"`
	Host      string `json:"host,omitempty"`
	Database  string `json:"database,omitempty"`
	Error     string `json:"error,omitempty"`
}

func toToolResponse(tool domain.Tool) ToolResponse {
	return ToolResponse{
		ID:          tool.ID,
		Name:        tool.Name,
		Description: tool.Description,
		Category:    string(tool.Category),
		Condition:   string(tool.Condition),
		Location: LocationResponse{
			City:       tool.Location.City,
			Area:       tool.Location.Area,
			PostalCode: tool.Location.PostalCode,
		},
		Owner: OwnerResponse{
			Name:  tool.Owner.Name,
			Email: tool.Owner.Email,
			Phone: tool.Owner.Phone,
		},
		Availability: string(tool.EffectiveAvailability()),
		Status:       tool.Status,
		BorrowingTerms: BorrowingTermsResponse{
			MaxDuration:  tool.BorrowingTerms.MaxDurationDays,
			Deposit:      tool.BorrowingTerms.Deposit,
			Instructions: tool.BorrowingTerms.Instructions,
		},
		Images:    nonNil(tool.Images),
		Tags:      nonNil(tool.Tags),
		CreatedAt: tool.CreatedAt,
		UpdatedAt: tool.UpdatedAt,
	}
}

func toFilterOptionsResponse(options domain.FacetOptions) FilterOptionsResponse {
	return FilterOptionsResponse{
		Categories:     nonNil(options.Categories),
		Cities:         nonNil(options.Cities),
		Conditions:     nonNil(options.Conditions),
		Availabilities: nonNil(options.Availabilities),
		Statuses:       nonNil(options.Statuses),
		TotalTools:     options.TotalTools,
	}
}

func toSearchParamsResponse(params domain.SearchParams) SearchParamsResponse {
	return SearchParamsResponse{
		Query:        params.Query,
		Category:     params.Category,
		City:         params.City,
		Availability: params.Availability,
		Condition:    params.Condition,
		SortBy:       params.SortBy,
		SortOrder:    params.SortOrder,
	}
}

func toSearchToolsResponse(result *domain.SearchResult) SearchToolsResponse {
	tools := make([]ToolResponse, 0, len(result.Tools))
	for _, tool := range result.Tools {
		tools = append(tools, toToolResponse(tool))
	}
	return SearchToolsResponse{
		Tools:         tools,
		FilterOptions: toFilterOptionsResponse(result.FilterOptions),
		SearchParams:  toSearchParamsResponse(result.Params),
		TotalResults:  result.TotalResults,
	}
}

func newSearchFailedResponse(params domain.SearchParams, message string) SearchFailedResponse {
	return SearchFailedResponse{
		Error:        message,
		Tools:        []ToolResponse{},
		SearchParams: toSearchParamsResponse(params),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
