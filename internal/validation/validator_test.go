package validation_test

import (
	"strings"
	"testing"

	"duckstore/internal/apperrors"
	"duckstore/internal/models"
	"duckstore/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestValidateRegistration(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name    string
		req     models.RegisterRequest
		wantMsg string
	}{
		{"valid", models.RegisterRequest{Name: "Alice", Email: "a@b.com", Password: "secret1"}, ""},
		{"short name", models.RegisterRequest{Name: "Al", Email: "a@b.com", Password: "secret1"}, `"name" length must be at least 3 characters long`},
		{"missing name", models.RegisterRequest{Email: "a@b.com", Password: "secret1"}, `"name" is required`},
		{"bad email", models.RegisterRequest{Name: "Alice", Email: "not-an-email", Password: "secret1"}, `"email" must be a valid email`},
		{"short email", models.RegisterRequest{Name: "Alice", Email: "a@b", Password: "secret1"}, `"email" length must be at least 5 characters long`},
		{"short password", models.RegisterRequest{Name: "Alice", Email: "a@b.com", Password: "abc"}, `"password" length must be at least 6 characters long`},
		{"long password", models.RegisterRequest{Name: "Alice", Email: "a@b.com", Password: strings.Repeat("x", 31)}, `"password" length must be less than or equal to 30 characters long`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRegistration(&tt.req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, appErr.Message())
		})
	}
}

func TestValidateLogin(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.ValidateLogin(&models.LoginRequest{Email: "a@b.com", Password: "secret1"}))

	err := v.ValidateLogin(&models.LoginRequest{Email: "a@b.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"password" is required`)
}

func validInput() models.ProductInput {
	return models.ProductInput{
		Name:        "Pirate Duck",
		Description: "Arr, a duck with an eyepatch",
		ImageURL:    "https://example.com/pirate.png",
		Color:       "yellow",
		Theme:       "pirates",
		Size:        ptr(10),
		Price:       ptr(0.0),
	}
}

func TestValidateProduct(t *testing.T) {
	v := validation.New()

	in := validInput()
	assert.NoError(t, v.ValidateProduct(&in), "zero price is allowed")

	in = validInput()
	in.Size = ptr(101)
	assert.ErrorContains(t, v.ValidateProduct(&in), `"size" must be less than or equal to 100`)

	in = validInput()
	in.Price = ptr(-1.0)
	assert.ErrorContains(t, v.ValidateProduct(&in), `"price" must be greater than or equal to 0`)

	in = validInput()
	in.Price = nil
	assert.ErrorContains(t, v.ValidateProduct(&in), `"price" is required`)
}

func TestValidateProductPatch(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.ValidateProductPatch(&models.ProductPatch{Color: ptr("blue")}))
	assert.ErrorContains(t, v.ValidateProductPatch(&models.ProductPatch{}), "at least one field")
	assert.ErrorContains(t, v.ValidateProductPatch(&models.ProductPatch{Size: ptr(0)}), `"size" must be greater than or equal to 1`)
}
