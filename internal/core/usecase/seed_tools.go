package usecase

import (
	"context"
	"fmt"
	"time"
	"tool-catalog-service/internal/contextkeys"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"
)

// SeedToolsUseCase заполняет хранилище тестовыми записями
type SeedToolsUseCase struct {
	seeder port.ToolSeederPort
	now    func() time.Time
}

func NewSeedToolsUseCase(seeder port.ToolSeederPort) *SeedToolsUseCase {
	return &SeedToolsUseCase{seeder: seeder, now: time.Now}
}

// Execute создаёт индексы и вставляет записи. Записи сохраняются как есть,
// проставляются только отсутствующие метки времени: каждая следующая запись
// на миллисекунду новее предыдущей.
func (uc *SeedToolsUseCase) Execute(ctx context.Context, tools []domain.Tool) (int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SeedTools",
		"count":    len(tools),
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.seeder.EnsureIndexes(ctx); err != nil {
		ucLogger.Error("Failed to ensure indexes", err, nil)
		return 0, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	if len(tools) == 0 {
		return 0, nil
	}

	base := uc.now().UTC()
	prepared := make([]domain.Tool, len(tools))
	for i, tool := range tools {
		if tool.CreatedAt.IsZero() {
			tool.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
		}
		if tool.UpdatedAt.IsZero() {
			tool.UpdatedAt = tool.CreatedAt
		}
		prepared[i] = tool
	}

	inserted, err := uc.seeder.InsertMany(ctx, prepared)
	if err != nil {
		ucLogger.Error("Failed to insert tools", err, nil)
		return inserted, fmt.Errorf("failed to insert tools: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"inserted": inserted})
	return inserted, nil
}
