package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"duckstore/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products, oldest first.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.WithContext(ctx).Order("created_at").Find(&products).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to get all products")
	}
	return products, nil
}

// GetByID retrieves a single product. IDs that are not UUIDs cannot exist
// and are reported as ErrProductNotFound without a round trip.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, pkgerrors.Wrapf(err, "failed to get product by ID %s", id)
	}
	return &product, nil
}

// Find returns the products matching every condition.
func (r *GORMProductRepository) Find(ctx context.Context, conds []Condition) ([]models.Product, error) {
	tx := r.db.WithContext(ctx).Model(&models.Product{})
	for _, c := range conds {
		switch c.Op {
		case OpEquals:
			tx = tx.Where(fmt.Sprintf("%s = ?", c.Column), c.Value)
		case OpContainsFold:
			pattern := "%" + escapeLike(strings.ToLower(fmt.Sprint(c.Value))) + "%"
			tx = tx.Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, c.Column), pattern)
		default:
			return nil, fmt.Errorf("unsupported operator %d", c.Op)
		}
	}

	products := []models.Product{}
	if err := tx.Order("created_at").Find(&products).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to query products")
	}
	return products, nil
}

// Create inserts a new product, assigning an ID when none is set.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return pkgerrors.Wrap(err, "failed to create product")
	}
	return nil
}

// Update applies the given column values to one product.
func (r *GORMProductRepository) Update(ctx context.Context, id string, columns map[string]any) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrProductNotFound
	}
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return pkgerrors.Wrapf(res.Error, "failed to update product %s", id)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete deletes a product by its ID.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrProductNotFound
	}
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return pkgerrors.Wrapf(res.Error, "failed to delete product %s", id)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Ping checks that the pool can reach the database.
func (r *GORMProductRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to get database handle")
	}
	return sqlDB.PingContext(ctx)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
