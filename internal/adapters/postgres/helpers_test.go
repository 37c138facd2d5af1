package postgres_adapter

import (
	"context"
	"errors"
	"tool-catalog-service/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

func postgresConfig(url string) postgres.Config {
	return postgres.Config{DatabaseURL: url}
}

func failingConnect(ctx context.Context, cfg postgres.Config) (*pgxpool.Pool, error) {
	return nil, errors.New("connection refused")
}
