package models

// RegisterRequest is the body of POST /user/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=6,max=30"`
}

// LoginRequest is the body of POST /user/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=6,max=30"`
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// ProductInput is the body of POST /products. Pointer fields distinguish
// "absent" from a zero value so required checks and defaults work.
type ProductInput struct {
	Name               string   `json:"name" validate:"required,min=3,max=255"`
	Description        string   `json:"description" validate:"required,min=3,max=1024"`
	ImageURL           string   `json:"imageUrl" validate:"required,min=3,max=1024"`
	Color              string   `json:"color" validate:"required,min=3,max=255"`
	Theme              string   `json:"theme" validate:"required,min=3,max=255"`
	Size               *int     `json:"size" validate:"required,min=1,max=100"`
	Price              *float64 `json:"price" validate:"required,min=0"`
	InStock            *bool    `json:"inStock"`
	IsOnDiscount       *bool    `json:"isOnDiscount"`
	DiscountPercentage *float64 `json:"discountPercentage" validate:"omitempty,min=0,max=100"`
	IsHidden           *bool    `json:"isHidden"`
}

// ToProduct applies the catalog defaults and returns the product to store.
func (in ProductInput) ToProduct(owner string) *Product {
	p := &Product{
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Color:       in.Color,
		Theme:       in.Theme,
		InStock:     true,
		CreatedBy:   owner,
	}
	if in.Size != nil {
		p.Size = *in.Size
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.IsOnDiscount != nil {
		p.IsOnDiscount = *in.IsOnDiscount
	}
	if in.DiscountPercentage != nil {
		p.DiscountPercentage = *in.DiscountPercentage
	}
	if in.IsHidden != nil {
		p.IsHidden = *in.IsHidden
	}
	return p
}

// ProductPatch is the body of PUT /products/:id. Only present fields change.
type ProductPatch struct {
	Name               *string  `json:"name" validate:"omitempty,min=3,max=255"`
	Description        *string  `json:"description" validate:"omitempty,min=3,max=1024"`
	ImageURL           *string  `json:"imageUrl" validate:"omitempty,min=3,max=1024"`
	Color              *string  `json:"color" validate:"omitempty,min=3,max=255"`
	Theme              *string  `json:"theme" validate:"omitempty,min=3,max=255"`
	Size               *int     `json:"size" validate:"omitempty,min=1,max=100"`
	Price              *float64 `json:"price" validate:"omitempty,min=0"`
	InStock            *bool    `json:"inStock"`
	IsOnDiscount       *bool    `json:"isOnDiscount"`
	DiscountPercentage *float64 `json:"discountPercentage" validate:"omitempty,min=0,max=100"`
	IsHidden           *bool    `json:"isHidden"`
}

// Columns returns the column/value pairs to update, keyed by database column.
func (p ProductPatch) Columns() map[string]any {
	cols := make(map[string]any)
	set := func(column string, present bool, value any) {
		if present {
			cols[column] = value
		}
	}
	set("name", p.Name != nil, deref(p.Name))
	set("description", p.Description != nil, deref(p.Description))
	set("image_url", p.ImageURL != nil, deref(p.ImageURL))
	set("color", p.Color != nil, deref(p.Color))
	set("theme", p.Theme != nil, deref(p.Theme))
	set("size", p.Size != nil, deref(p.Size))
	set("price", p.Price != nil, deref(p.Price))
	set("in_stock", p.InStock != nil, deref(p.InStock))
	set("is_on_discount", p.IsOnDiscount != nil, deref(p.IsOnDiscount))
	set("discount_percentage", p.DiscountPercentage != nil, deref(p.DiscountPercentage))
	set("is_hidden", p.IsHidden != nil, deref(p.IsHidden))
	return cols
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
