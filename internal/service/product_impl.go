package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shop-server/internal/interfaces"
	"shop-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check to ensure productServiceImpl implements ProductService
var _ ProductService = (*productServiceImpl)(nil)

type productServiceImpl struct {
	repo      interfaces.ProductRepository
	publisher interfaces.ProductEventPublisher
	logger    *zap.Logger
}

// NewProductService creates a new instance of productServiceImpl.
func NewProductService(repo interfaces.ProductRepository, publisher interfaces.ProductEventPublisher, logger *zap.Logger) ProductService {
	return &productServiceImpl{
		repo:      repo,
		publisher: publisher,
		logger:    logger.Named("ProductService"),
	}
}

func (s *productServiceImpl) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.List(ctx)
}

func (s *productServiceImpl) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.Get(ctx, id)
}

// Create validates the payload and stores the product under a fresh id.
func (s *productServiceImpl) Create(ctx context.Context, name string, price float64, description, imageURL string) (*models.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required: %w", models.ErrInvalidInput)
	}
	if price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", models.ErrInvalidInput)
	}

	product := &models.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Price:       price,
		Description: description,
		ImageURL:    imageURL,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err), zap.String("name", name))
		return nil, err
	}

	s.logger.Info("Product created", zap.String("id", product.ID), zap.String("name", product.Name))
	s.publishEvent(ctx, models.EventProductCreated, *product)
	return product, nil
}

// Update rejects empty updates before touching the backend.
func (s *productServiceImpl) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	if update.IsEmpty() {
		return nil, models.ErrEmptyUpdate
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, fmt.Errorf("name must not be empty: %w", models.ErrInvalidInput)
	}
	if update.Price != nil && *update.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", models.ErrInvalidInput)
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("id", id))
	s.publishEvent(ctx, models.EventProductUpdated, *updated)
	return updated, nil
}

func (s *productServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.String("id", id))
	s.publishEvent(ctx, models.EventProductDeleted, models.Product{ID: id})
	return nil
}

// publishEvent is best-effort: a broker failure must never fail the write
// that already happened.
func (s *productServiceImpl) publishEvent(ctx context.Context, eventType string, product models.Product) {
	event := models.ProductEvent{
		Event:      eventType,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish product event", zap.Error(err), zap.String("event", eventType), zap.String("productID", product.ID))
	}
}
