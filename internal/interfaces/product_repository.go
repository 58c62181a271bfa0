package interfaces

import (
	"context"

	"shop-server/internal/models"
)

// ProductRepository defines persistence operations for products. Implemented
// by the DynamoDB backend and the in-memory fallback; callers must not assume
// any enumeration order from List.
type ProductRepository interface {
	// List returns every product in the store.
	List(ctx context.Context) ([]models.Product, error)
	// Get returns the product with the given id, or models.ErrProductNotFound.
	Get(ctx context.Context, id string) (*models.Product, error)
	// Create stores a new product. The caller assigns the id.
	Create(ctx context.Context, product *models.Product) error
	// Update applies the supplied fields and returns the updated product,
	// or models.ErrProductNotFound when the id does not exist.
	Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error)
	// Delete removes the product, or returns models.ErrProductNotFound.
	Delete(ctx context.Context, id string) error
}
