package internal

import (
	"context"
	"fmt"
	"tool-catalog-service/internal/adapters/memory"
	mongodb_adapter "tool-catalog-service/internal/adapters/mongodb"
	postgres_adapter "tool-catalog-service/internal/adapters/postgres"
	"tool-catalog-service/internal/configs"
	"tool-catalog-service/internal/contextkeys"
	"tool-catalog-service/internal/contracts"
	"tool-catalog-service/internal/core/port"
	"tool-catalog-service/internal/core/usecase"
	"tool-catalog-service/pkg/mongodb"
	"tool-catalog-service/pkg/postgres"
	"tool-catalog-service/seeds"
)

// StoreConnector - коннектор, который умеет отдавать и коллекцию на запись
type StoreConnector interface {
	port.ToolStoreConnectorPort
	Seeder(ctx context.Context) (port.ToolSeederPort, error)
}

type memoryConnector struct {
	*memory.Connector
	collection *memory.ToolCollection
}

func (m memoryConnector) Seeder(ctx context.Context) (port.ToolSeederPort, error) {
	return m.collection, nil
}

// NewStoreConnector выбирает адаптер хранилища по STORE_DRIVER.
// Соединение не открывается: первый Acquire сделает это сам.
func NewStoreConnector(cfg *configs.AppConfig) (StoreConnector, error) {
	switch cfg.Store.Driver {
	case configs.DriverMongoDB:
		return mongodb_adapter.NewConnector(mongodb_adapter.ConnectorConfig{
			Client: mongodb.Config{
				URI:            cfg.MongoDB.URI,
				AppName:        cfg.AppName,
				ConnectTimeout: cfg.Store.ConnectTimeout,
			},
			Database:   cfg.MongoDB.Database,
			Collection: cfg.MongoDB.Collection,
		}), nil
	case configs.DriverPostgres:
		return postgres_adapter.NewConnector(postgres.Config{
			DatabaseURL:    cfg.Database.URL,
			ConnectTimeout: cfg.Store.ConnectTimeout,
		}), nil
	case configs.DriverMemory:
		collection := memory.NewToolCollection()
		return memoryConnector{Connector: memory.NewConnector(collection), collection: collection}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// SeedStore записывает встроенный набор тестовых инструментов
func SeedStore(ctx context.Context, connector StoreConnector) (int, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	tools, err := contracts.DecodeToolRecords(seeds.ToolsJSON)
	if err != nil {
		return 0, fmt.Errorf("failed to decode seed records: %w", err)
	}

	seeder, err := connector.Seeder(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire store for seeding: %w", err)
	}

	inserted, err := usecase.NewSeedToolsUseCase(seeder).Execute(ctx, tools)
	if err != nil {
		return inserted, err
	}
	logger.Info("Seed records inserted", port.Fields{"inserted": inserted, "total": len(tools)})
	return inserted, nil
}
