package models

import "time"

// Product change event types published to the product_events exchange.
const (
	EventProductCreated = "PRODUCT_CREATED"
	EventProductUpdated = "PRODUCT_UPDATED"
	EventProductDeleted = "PRODUCT_DELETED"
)

// ProductEvent is the payload published after a successful product write.
type ProductEvent struct {
	Event      string    `json:"event"`
	Product    Product   `json:"product"`
	OccurredAt time.Time `json:"occurredAt"`
}
