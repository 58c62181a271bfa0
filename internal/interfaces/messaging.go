package interfaces

import (
	"context"

	"shop-server/internal/models"
)

// ProductEventPublisher publishes product change events to an external bus.
// Publishing is best-effort: failures are logged by the caller, never
// surfaced to API clients.
type ProductEventPublisher interface {
	PublishProductEvent(ctx context.Context, event models.ProductEvent) error
	Close() error
}
