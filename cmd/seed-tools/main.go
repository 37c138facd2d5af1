package main

import (
	"context"
	"fmt"
	"log"
	"time"
	"tool-catalog-service/internal"
	"tool-catalog-service/internal/configs"
	"tool-catalog-service/internal/contextkeys"
	"tool-catalog-service/internal/core/port"
)

const seedTimeout = time.Minute

// Утилита наполняет хранилище встроенным набором инструментов
func main() {
	if err := run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func run() error {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Store.Driver == configs.DriverMemory {
		return fmt.Errorf("nothing to seed: driver %q keeps data in process memory", cfg.Store.Driver)
	}

	logger, fluentClient, err := internal.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if fluentClient != nil {
		defer fluentClient.Close()
	}
	seedLogger := logger.WithFields(port.Fields{"component": "seed-tools", "driver": cfg.Store.Driver})

	connector, err := internal.NewStoreConnector(cfg)
	if err != nil {
		return err
	}
	defer connector.Close(context.Background())

	ctx, cancel := context.WithTimeout(contextkeys.ContextWithLogger(context.Background(), seedLogger), seedTimeout)
	defer cancel()

	inserted, err := internal.SeedStore(ctx, connector)
	if err != nil {
		seedLogger.Error("Seeding failed", err, port.Fields{"inserted": inserted})
		return err
	}
	seedLogger.Info("Seeding finished", port.Fields{"inserted": inserted})
	return nil
}
