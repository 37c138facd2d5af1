package port

import (
	"context"
	"tool-catalog-service/internal/core/domain"
)

// SearchEventsPort публикует факты выполненных поисков для аналитики
type SearchEventsPort interface {
	SearchPerformed(ctx context.Context, params domain.SearchParams, totalResults int) error
}
