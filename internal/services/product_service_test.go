package services_test

import (
	"context"
	"fmt"
	"testing"

	"duckstore/internal/apperrors"
	"duckstore/internal/logs"
	"duckstore/internal/models"
	"duckstore/internal/repositories"
	"duckstore/internal/services"
	"duckstore/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Find(ctx context.Context, conds []repositories.Condition) ([]models.Product, error) {
	args := m.Called(ctx, conds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, id string, columns map[string]any) error {
	args := m.Called(ctx, id, columns)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

func ptr[T any](v T) *T { return &v }

func newProductService(repo repositories.ProductRepository, events services.EventPublisher) *services.ProductService {
	return services.NewProductService(repo, validation.New(), events, logs.Discard())
}

func duckInput() *models.ProductInput {
	return &models.ProductInput{
		Name:        "Pirate Duck",
		Description: "Arr",
		ImageURL:    "img/pirate.png",
		Color:       "yellow",
		Theme:       "pirates",
		Size:        ptr(12),
		Price:       ptr(9.99),
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := newProductService(mockRepo, mockEvents)

	// Successful creation applies defaults and the owner
	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.CreatedBy == "user-1" && p.InStock && !p.IsOnDiscount && p.DiscountPercentage == 0 && p.Size == 12
	})).Return(nil).Once()
	mockEvents.On("PublishProductEvent", services.EventProductCreated, mock.Anything).Return(nil).Once()

	product, err := service.CreateProduct(ctx, "user-1", duckInput())
	require.NoError(t, err)
	assert.Equal(t, "Pirate Duck", product.Name)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)

	// Broker failure does not fail the request
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()
	mockEvents.On("PublishProductEvent", services.EventProductCreated, mock.Anything).Return(fmt.Errorf("broker down")).Once()
	_, err = service.CreateProduct(ctx, "user-1", duckInput())
	assert.NoError(t, err)

	// Database error
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).Return(fmt.Errorf("database error")).Once()
	_, err = service.CreateProduct(ctx, "user-1", duckInput())
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)

	// Invalid input never reaches the repository
	bad := duckInput()
	bad.Size = ptr(0)
	_, err = service.CreateProduct(ctx, "user-1", bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockRepo.AssertNumberOfCalls(t, "Create", 3)
}

func TestProductService_GetAllProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Product A", Price: 10.0},
		{ID: "2", Name: "Product B", Price: 20.0},
	}
	mockRepo.On("GetAll", ctx).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo, nil)

	expectedProduct := &models.Product{ID: "1", Name: "Product A", Price: 10.0}

	mockRepo.On("GetByID", ctx, "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	mockRepo.On("GetByID", ctx, "99").Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProductByID(ctx, "99")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, product)

	mockRepo.On("GetByID", ctx, "42").Return(nil, fmt.Errorf("driver: bad connection")).Once()
	_, err = service.GetProductByID(ctx, "42")
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := newProductService(mockRepo, mockEvents)

	patch := &models.ProductPatch{Color: ptr("blue"), Price: ptr(12.0)}
	columns := map[string]any{"color": "blue", "price": 12.0}

	mockRepo.On("Update", ctx, "1", columns).Return(nil).Once()
	mockEvents.On("PublishProductEvent", services.EventProductUpdated, mock.Anything).Return(nil).Once()
	assert.NoError(t, service.UpdateProduct(ctx, "1", patch))

	mockRepo.On("Update", ctx, "99", columns).Return(repositories.ErrProductNotFound).Once()
	err := service.UpdateProduct(ctx, "99", patch)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "id=99")

	err = service.UpdateProduct(ctx, "1", &models.ProductPatch{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := newProductService(mockRepo, mockEvents)

	mockRepo.On("Delete", ctx, "1").Return(nil).Once()
	mockEvents.On("PublishProductEvent", services.EventProductDeleted, map[string]interface{}{"productId": "1"}).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(ctx, "1"))

	mockRepo.On("Delete", ctx, "99").Return(repositories.ErrProductNotFound).Once()
	assert.ErrorIs(t, service.DeleteProduct(ctx, "99"), apperrors.ErrNotFound)

	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_QueryByKeyValue(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo, nil)

	mockRepo.On("Find", ctx, []repositories.Condition{{Column: "color", Op: repositories.OpContainsFold, Value: "YeL"}}).
		Return([]models.Product{{ID: "1", Color: "yellow"}}, nil).Once()
	products, err := service.QueryByKeyValue(ctx, "color", "YeL")
	require.NoError(t, err)
	assert.Len(t, products, 1)

	mockRepo.On("Find", ctx, []repositories.Condition{{Column: "size", Op: repositories.OpEquals, Value: 10.0}}).
		Return([]models.Product{}, nil).Once()
	_, err = service.QueryByKeyValue(ctx, "size", "10")
	require.NoError(t, err)

	mockRepo.On("Find", ctx, []repositories.Condition{{Column: "in_stock", Op: repositories.OpEquals, Value: false}}).
		Return([]models.Product{}, nil).Once()
	_, err = service.QueryByKeyValue(ctx, "inStock", "false")
	require.NoError(t, err)

	_, err = service.QueryByKeyValue(ctx, "password", "x")
	assert.ErrorIs(t, err, apperrors.ErrInvalidQuery)

	_, err = service.QueryByKeyValue(ctx, "$where", "1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidQuery)

	_, err = service.QueryByKeyValue(ctx, "size", "large")
	assert.ErrorIs(t, err, apperrors.ErrInvalidQuery)

	mockRepo.AssertExpectations(t)
}

func TestProductService_QueryGeneric(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo, nil)

	mockRepo.On("Find", ctx, []repositories.Condition{{Column: "color", Op: repositories.OpEquals, Value: "yellow"}}).
		Return([]models.Product{{ID: "1", Color: "yellow"}}, nil).Once()
	products, err := service.QueryGeneric(ctx, map[string]any{"color": "yellow"})
	require.NoError(t, err)
	assert.Len(t, products, 1)

	_, err = service.QueryGeneric(ctx, map[string]any{"price": map[string]any{"$gt": 0.0}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidQuery)

	_, err = service.QueryGeneric(ctx, map[string]any{"color": []any{"yellow", "blue"}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidQuery)

	_, err = service.QueryGeneric(ctx, map[string]any{"unknown": "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidQuery)

	mockRepo.On("Find", ctx, []repositories.Condition{}).Return([]models.Product{}, nil).Once()
	_, err = service.QueryGeneric(ctx, map[string]any{})
	require.NoError(t, err)

	mockRepo.On("Find", ctx, mock.Anything).Return(nil, fmt.Errorf("syntax error")).Once()
	_, err = service.QueryGeneric(ctx, map[string]any{"isHidden": true})
	assert.ErrorIs(t, err, apperrors.ErrPersistence)

	mockRepo.AssertExpectations(t)
}
