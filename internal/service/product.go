package service

import (
	"context"

	"shop-server/internal/models"
)

// ProductService owns product lifecycle rules on top of the repository:
// input validation, id assignment, and change-event publication.
type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	// Get fails with models.ErrProductNotFound for an unknown id.
	Get(ctx context.Context, id string) (*models.Product, error)
	// Create validates the payload, assigns a fresh id and stores the product.
	Create(ctx context.Context, name string, price float64, description, imageURL string) (*models.Product, error)
	// Update applies a sparse update. An update with no fields fails with
	// models.ErrEmptyUpdate before any backend call.
	Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error)
	// Delete fails with models.ErrProductNotFound for an unknown id.
	Delete(ctx context.Context, id string) error
}
