package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"duckstore/internal/apperrors"
	"duckstore/internal/models"
	"duckstore/internal/repositories"
	"duckstore/internal/validation"
)

// Product event names published after successful writes.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers product events to a broker.
type EventPublisher interface {
	PublishProductEvent(event string, payload map[string]interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	validator *validation.Validator
	events    EventPublisher
	logger    *slog.Logger
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, v *validation.Validator, events EventPublisher, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		validator: v,
		events:    events,
		logger:    logger,
	}
}

// CreateProduct validates the input and stores a product owned by owner.
func (s *ProductService) CreateProduct(ctx context.Context, owner string, in *models.ProductInput) (*models.Product, error) {
	if err := s.validator.ValidateProduct(in); err != nil {
		return nil, err
	}

	product := in.ToProduct(owner)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperrors.Persistence(err, "failed to create product")
	}

	s.publish(ctx, EventProductCreated, map[string]interface{}{
		"productId": product.ID,
		"name":      product.Name,
		"createdBy": product.CreatedBy,
	})
	return product, nil
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to list products")
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "failed to get product")
	}
	return product, nil
}

// UpdateProduct applies a partial update.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch *models.ProductPatch) error {
	if err := s.validator.ValidateProductPatch(patch); err != nil {
		return err
	}

	columns := patch.Columns()
	if err := s.repo.Update(ctx, id, columns); err != nil {
		return s.mapRepoError(err, id, "failed to update product")
	}

	fields := make([]string, 0, len(columns))
	for column := range columns {
		fields = append(fields, column)
	}
	s.publish(ctx, EventProductUpdated, map[string]interface{}{
		"productId": id,
		"fields":    fields,
	})
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "failed to delete product")
	}
	s.publish(ctx, EventProductDeleted, map[string]interface{}{"productId": id})
	return nil
}

// QueryByKeyValue returns products whose allow-listed field matches value.
func (s *ProductService) QueryByKeyValue(ctx context.Context, key, value string) ([]models.Product, error) {
	cond, err := keyValueCondition(key, value)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, []repositories.Condition{cond})
}

// QueryGeneric returns products equal on every field of body.
func (s *ProductService) QueryGeneric(ctx context.Context, body map[string]any) ([]models.Product, error) {
	conds, err := bodyConditions(body)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, conds)
}

// Ping reports whether the store is reachable.
func (s *ProductService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *ProductService) find(ctx context.Context, conds []repositories.Condition) ([]models.Product, error) {
	products, err := s.repo.Find(ctx, conds)
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to query products")
	}
	return products, nil
}

func (s *ProductService) mapRepoError(err error, id, msg string) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return apperrors.ErrNotFound.WithMessage(fmt.Sprintf("Cannot find duck with id=%s.", id))
	}
	return apperrors.Persistence(err, msg)
}

// publish never fails the request; broker problems are logged.
func (s *ProductService) publish(ctx context.Context, event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishProductEvent(event, payload); err != nil {
		s.logger.WarnContext(ctx, "failed to publish product event", "event", event, "error", err)
	}
}
