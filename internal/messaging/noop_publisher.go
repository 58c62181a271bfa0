package messaging

import (
	"context"

	"shop-server/internal/interfaces"
	"shop-server/internal/models"
)

// Compile-time check to ensure NoopProductPublisher implements ProductEventPublisher
var _ interfaces.ProductEventPublisher = (*NoopProductPublisher)(nil)

// NoopProductPublisher is wired when no message broker is configured. The
// event bus is as optional as the managed table.
type NoopProductPublisher struct{}

func (NoopProductPublisher) PublishProductEvent(ctx context.Context, event models.ProductEvent) error {
	return nil
}

func (NoopProductPublisher) Close() error { return nil }
