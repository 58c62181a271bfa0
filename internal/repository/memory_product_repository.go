package repository

import (
	"context"
	"sync"

	"shop-server/internal/interfaces"
	"shop-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check to ensure memoryProductRepository implements ProductRepository
var _ interfaces.ProductRepository = (*memoryProductRepository)(nil)

// memoryProductRepository is the in-process fallback used when no products
// table is configured. All access goes through the mutex: Gin serves
// requests in parallel, so the check-then-write paths need real exclusion.
type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
	logger   *zap.Logger
}

// NewMemoryProductRepository creates the in-memory fallback, seeded with a
// couple of sample products so a fresh development instance is not empty.
func NewMemoryProductRepository(logger *zap.Logger) interfaces.ProductRepository {
	r := &memoryProductRepository{
		products: make(map[string]models.Product),
		logger:   logger.Named("MemoryProductRepo"),
	}
	seed := []models.Product{
		{ID: uuid.NewString(), Name: "T-Shirt", Price: 39.9, Description: "100% cotton t-shirt"},
		{ID: uuid.NewString(), Name: "Mug", Price: 19.9, Description: "300ml ceramic mug"},
	}
	for _, p := range seed {
		r.products[p.ID] = p
	}
	r.logger.Info("In-memory product store initialized", zap.Int("seeded", len(seed)))
	return r
}

func (r *memoryProductRepository) List(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		list = append(list, p)
	}
	return list, nil
}

func (r *memoryProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &p, nil
}

func (r *memoryProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}

func (r *memoryProductRepository) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	update.Apply(&p)
	r.products[id] = p
	return &p, nil
}

func (r *memoryProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return models.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}
