package mongodb_adapter

import (
	"context"
	"fmt"
	"sync"
	"time"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"
	"tool-catalog-service/pkg/mongodb"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	driverName        = "mongodb"
	statusPingTimeout = 2 * time.Second
	retireGrace       = 30 * time.Second
)

type ConnectorConfig struct {
	Client     mongodb.Config
	Database   string
	Collection string
}

// Connector лениво создаёт клиента и переиспользует его между запросами.
// После временной ошибки соединение помечается подозрительным:
// следующий Acquire проверяет его пингом и при необходимости пересоздаёт.
type Connector struct {
	cfg        ConnectorConfig
	connect    func(ctx context.Context, cfg mongodb.Config) (*mongo.Client, error)
	disconnect func(client *mongo.Client)

	mu         sync.RWMutex
	client     *mongo.Client
	collection *ToolCollection
	suspect    bool
	lastErr    error
}

func NewConnector(cfg ConnectorConfig) *Connector {
	return &Connector{cfg: cfg, connect: mongodb.NewClient, disconnect: disconnectGracefully}
}

func (c *Connector) Acquire(ctx context.Context) (port.ToolCollectionPort, error) {
	return c.acquire(ctx)
}

// Seeder возвращает коллекцию с операциями записи для утилиты наполнения
func (c *Connector) Seeder(ctx context.Context) (port.ToolSeederPort, error) {
	return c.acquire(ctx)
}

func (c *Connector) acquire(ctx context.Context) (*ToolCollection, error) {
	c.mu.RLock()
	if c.client != nil && !c.suspect {
		collection := c.collection
		c.mu.RUnlock()
		return collection, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	collection, retired, err := c.reconnectLocked(ctx)
	c.mu.Unlock()

	// старый клиент закрывается вне блокировки: запросы, которые ещё
	// работают через него, успевают завершиться за retireGrace
	if retired != nil {
		go c.disconnect(retired)
	}
	return collection, err
}

// reconnectLocked вызывается под c.mu. Возвращает клиента, которого нужно закрыть.
func (c *Connector) reconnectLocked(ctx context.Context) (*ToolCollection, *mongo.Client, error) {
	// Другая горутина могла переподключиться, пока мы ждали блокировку
	if c.client != nil && !c.suspect {
		return c.collection, nil, nil
	}

	var retired *mongo.Client
	if c.client != nil {
		if err := c.client.Ping(ctx, readpref.Primary()); err == nil {
			c.suspect = false
			return c.collection, nil, nil
		}
		retired = c.client
		c.client, c.collection = nil, nil
	}

	client, err := c.connect(ctx, c.cfg.Client)
	if err != nil {
		c.lastErr = err
		return nil, retired, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	c.client = client
	c.suspect = false
	c.lastErr = nil
	c.collection = NewToolCollection(client.Database(c.cfg.Database).Collection(c.cfg.Collection), c.markSuspect)
	return c.collection, retired, nil
}

// disconnectGracefully ждёт возврата занятых соединений не дольше retireGrace
func disconnectGracefully(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), retireGrace)
	defer cancel()
	_ = client.Disconnect(ctx)
}

func (c *Connector) markSuspect() {
	c.mu.Lock()
	c.suspect = true
	c.mu.Unlock()
}

func (c *Connector) Status(ctx context.Context) domain.StoreStatus {
	status := domain.StoreStatus{
		Driver:   driverName,
		Host:     mongodb.Hosts(c.cfg.Client.URI),
		Database: c.cfg.Database,
	}

	c.mu.RLock()
	client, lastErr := c.client, c.lastErr
	c.mu.RUnlock()

	if client == nil {
		if lastErr != nil {
			status.Error = lastErr.Error()
		}
		return status
	}

	pingCtx, cancel := context.WithTimeout(ctx, statusPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		status.Error = err.Error()
		return status
	}
	status.Connected = true
	return status
}

func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client, c.collection = nil, nil
	c.mu.Unlock()

	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
