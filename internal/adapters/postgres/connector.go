package postgres_adapter

import (
	"context"
	"fmt"
	"sync"
	"time"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"
	"tool-catalog-service/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	driverName        = "postgres"
	statusPingTimeout = 2 * time.Second
)

// Connector держит пул соединений. После временной ошибки пул проверяется
// пингом при следующем Acquire и пересоздаётся, если не отвечает.
type Connector struct {
	cfg       postgres.Config
	connect   func(ctx context.Context, cfg postgres.Config) (*pgxpool.Pool, error)
	closePool func(pool *pgxpool.Pool)

	mu      sync.RWMutex
	pool    *pgxpool.Pool
	repo    *ToolRepository
	suspect bool
	lastErr error
}

func NewConnector(cfg postgres.Config) *Connector {
	return &Connector{cfg: cfg, connect: postgres.NewClient, closePool: (*pgxpool.Pool).Close}
}

func (c *Connector) Acquire(ctx context.Context) (port.ToolCollectionPort, error) {
	return c.acquire(ctx)
}

func (c *Connector) Seeder(ctx context.Context) (port.ToolSeederPort, error) {
	return c.acquire(ctx)
}

func (c *Connector) acquire(ctx context.Context) (*ToolRepository, error) {
	c.mu.RLock()
	if c.pool != nil && !c.suspect {
		repo := c.repo
		c.mu.RUnlock()
		return repo, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	repo, retired, err := c.reconnectLocked(ctx)
	c.mu.Unlock()

	// Close пула ждёт возврата всех занятых соединений, поэтому
	// старый пул закрывается в фоне и не держит c.mu
	if retired != nil {
		go c.closePool(retired)
	}
	return repo, err
}

// reconnectLocked вызывается под c.mu. Возвращает пул, который нужно закрыть.
func (c *Connector) reconnectLocked(ctx context.Context) (*ToolRepository, *pgxpool.Pool, error) {
	if c.pool != nil && !c.suspect {
		return c.repo, nil, nil
	}

	var retired *pgxpool.Pool
	if c.pool != nil {
		if err := c.pool.Ping(ctx); err == nil {
			c.suspect = false
			return c.repo, nil, nil
		}
		retired = c.pool
		c.pool, c.repo = nil, nil
	}

	pool, err := c.connect(ctx, c.cfg)
	if err != nil {
		c.lastErr = err
		return nil, retired, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	repo, err := NewToolRepository(pool, c.markSuspect)
	if err != nil {
		pool.Close()
		return nil, retired, err
	}

	c.pool, c.repo = pool, repo
	c.suspect = false
	c.lastErr = nil
	return repo, retired, nil
}

func (c *Connector) markSuspect() {
	c.mu.Lock()
	c.suspect = true
	c.mu.Unlock()
}

func (c *Connector) Status(ctx context.Context) domain.StoreStatus {
	host, database := postgres.Describe(c.cfg.DatabaseURL)
	status := domain.StoreStatus{Driver: driverName, Host: host, Database: database}

	c.mu.RLock()
	pool, lastErr := c.pool, c.lastErr
	c.mu.RUnlock()

	if pool == nil {
		if lastErr != nil {
			status.Error = lastErr.Error()
		}
		return status
	}

	pingCtx, cancel := context.WithTimeout(ctx, statusPingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		status.Error = err.Error()
		return status
	}
	status.Connected = true
	return status
}

func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	pool := c.pool
	c.pool, c.repo = nil, nil
	c.mu.Unlock()

	if pool != nil {
		pool.Close()
	}
	return nil
}
