package contracts

import (
	"encoding/json"
	"fmt"
	"time"
	"tool-catalog-service/internal/core/domain"
)

const (
	ToolSearchPerformedEventType    = "ToolSearchPerformedEvent"
	ToolSearchPerformedEventVersion = "1.0.0"
)

type SearchParamsPayload struct {
	Query        string `json:"query"`
	Category     string `json:"category"`
	City         string `json:"city"`
	Availability string `json:"availability"`
	Condition    string `json:"condition"`
	SortBy       string `json:"sortBy"`
	SortOrder    string `json:"sortOrder"`
}

// ToolSearchPerformedEvent публикуется после каждого успешного поиска
type ToolSearchPerformedEvent struct {
	SearchParams SearchParamsPayload `json:"searchParams"`
	TotalResults int                 `json:"totalResults"`
	TraceID      string              `json:"traceId,omitempty"`
	OccurredAt   time.Time           `json:"occurredAt"`
}

func NewToolSearchPerformedEvent(params domain.SearchParams, totalResults int, traceID string, at time.Time) ToolSearchPerformedEvent {
	return ToolSearchPerformedEvent{
		SearchParams: SearchParamsPayload{
			Query:        params.Query,
			Category:     params.Category,
			City:         params.City,
			Availability: params.Availability,
			Condition:    params.Condition,
			SortBy:       params.SortBy,
			SortOrder:    params.SortOrder,
		},
		TotalResults: totalResults,
		TraceID:      traceID,
		OccurredAt:   at.UTC(),
	}
}

// Marshal сериализует событие и проверяет его по схеме
func (e ToolSearchPerformedEvent) Marshal() ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", ToolSearchPerformedEventType, err)
	}
	if err := Validate(ToolSearchPerformedEventType, ToolSearchPerformedEventVersion, body); err != nil {
		return nil, err
	}
	return body, nil
}
