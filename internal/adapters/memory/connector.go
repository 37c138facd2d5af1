package memory

import (
	"context"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/internal/core/port"
)

// Connector всегда отдаёт одну и ту же коллекцию
type Connector struct {
	collection *ToolCollection
}

func NewConnector(collection *ToolCollection) *Connector {
	return &Connector{collection: collection}
}

func (c *Connector) Acquire(ctx context.Context) (port.ToolCollectionPort, error) {
	return c.collection, nil
}

func (c *Connector) Status(ctx context.Context) domain.StoreStatus {
	return domain.StoreStatus{Driver: "memory", Connected: true, Host: "local", Database: "memory"}
}

func (c *Connector) Close(ctx context.Context) error {
	return nil
}
