package repositories

import (
	"context"
	"errors"

	"duckstore/internal/models"
)

// ErrProductNotFound is returned when no product matches an ID.
var ErrProductNotFound = errors.New("product not found")

// Operator is a comparison applied by a Condition.
type Operator int

const (
	// OpEquals matches values exactly.
	OpEquals Operator = iota
	// OpContainsFold matches text containing the value, ignoring case.
	OpContainsFold
)

// Condition restricts a query on one column. Column must come from a fixed
// allow-list; it is interpolated into SQL.
type Condition struct {
	Column string
	Op     Operator
	Value  any
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Find(ctx context.Context, conds []Condition) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, columns map[string]any) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
