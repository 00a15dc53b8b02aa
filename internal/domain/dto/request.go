// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"math"
	"strings"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrNameRequired is returned when a name is missing or blank.
	ErrNameRequired = &ValidationError{Field: "name", Message: "is required"}
	// ErrNegativePrice is returned when price is below zero.
	ErrNegativePrice = &ValidationError{Field: "price", Message: "must not be negative"}
	// ErrNegativeStock is returned when stock is below zero.
	ErrNegativeStock = &ValidationError{Field: "stock", Message: "must not be negative"}
	// ErrEmptyPatch is returned when a PATCH body sets no field.
	ErrEmptyPatch = &ValidationError{Field: "body", Message: "at least one field must be set"}
)

// ProductRequest represents the JSON request body for creating a product.
//
// @Description Request to create a catalog product
// @Example {"name": "Trail Runner", "price": 129.9, "stock": 12, "category_id": 1, "brand_id": 1}
type ProductRequest struct {
	Name        string  `json:"name" binding:"required" example:"Trail Runner"`
	Description string  `json:"description,omitempty" example:"Lightweight trail shoe"`
	Price       float64 `json:"price" binding:"gte=0" example:"129.9" minimum:"0"`
	Stock       int     `json:"stock" binding:"gte=0" example:"12" minimum:"0"`
	CategoryID  int64   `json:"category_id" binding:"required,gt=0" example:"1"`
	BrandID     int64   `json:"brand_id" binding:"required,gt=0" example:"1"`
} // @name ProductRequest

// Validate performs custom validation on the request.
func (r *ProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if r.Price < 0 {
		return ErrNegativePrice
	}
	if r.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// ToModel converts the request into a domain product.
func (r *ProductRequest) ToModel() model.Product {
	return model.Product{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		CategoryID:  r.CategoryID,
		BrandID:     r.BrandID,
	}
}

// ProductPatchRequest represents the JSON request body for a partial product update.
// Omitted fields are left untouched.
//
// @Description Partial product update
// @Example {"price": 99.9}
type ProductPatchRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" minimum:"0"`
	Stock       *int     `json:"stock,omitempty" minimum:"0"`
	CategoryID  *int64   `json:"category_id,omitempty"`
	BrandID     *int64   `json:"brand_id,omitempty"`
} // @name ProductPatchRequest

// Validate performs custom validation on the request.
func (r *ProductPatchRequest) Validate() error {
	switch {
	case r.Name == nil && r.Description == nil && r.Price == nil &&
		r.Stock == nil && r.CategoryID == nil && r.BrandID == nil:
		return ErrEmptyPatch
	case r.Name != nil && strings.TrimSpace(*r.Name) == "":
		return ErrNameRequired
	case r.Price != nil && *r.Price < 0:
		return ErrNegativePrice
	case r.Stock != nil && *r.Stock < 0:
		return ErrNegativeStock
	}
	return nil
}

// ToPatch converts the request into a domain patch.
func (r *ProductPatchRequest) ToPatch() model.ProductPatch {
	return model.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		CategoryID:  r.CategoryID,
		BrandID:     r.BrandID,
	}
}

// ProductListQuery binds the optional filter parameters of GET /products.
// A parameter takes part in filtering only when present in the query string.
type ProductListQuery struct {
	CategoryID *int64   `form:"categoryId"`
	BrandID    *int64   `form:"brandId"`
	MinPrice   *float64 `form:"minPrice"`
	MaxPrice   *float64 `form:"maxPrice"`
	MinStock   *int     `form:"minStock"`
}

// Validate rejects NaN and infinite price bounds, which strconv accepts but
// which would make a bound match every product.
func (q ProductListQuery) Validate() error {
	for _, bound := range []struct {
		field string
		value *float64
	}{{"minPrice", q.MinPrice}, {"maxPrice", q.MaxPrice}} {
		if bound.value != nil && (math.IsNaN(*bound.value) || math.IsInf(*bound.value, 0)) {
			return &ValidationError{Field: bound.field, Message: "must be a finite number"}
		}
	}
	return nil
}

// ToFilter converts the query into a product filter.
func (q ProductListQuery) ToFilter() model.ProductFilter {
	f := model.NewProductFilter()
	if q.CategoryID != nil {
		f = f.WithCategoryID(*q.CategoryID)
	}
	if q.BrandID != nil {
		f = f.WithBrandID(*q.BrandID)
	}
	if q.MinPrice != nil {
		f = f.WithMinPrice(*q.MinPrice)
	}
	if q.MaxPrice != nil {
		f = f.WithMaxPrice(*q.MaxPrice)
	}
	if q.MinStock != nil {
		f = f.WithMinStock(*q.MinStock)
	}
	return f
}

// NamedRequest is the request body for creating a category or a brand.
//
// @Description Request to create a category or brand
// @Example {"name": "Running", "description": "Running shoes and apparel"}
type NamedRequest struct {
	Name        string `json:"name" binding:"required" example:"Running"`
	Description string `json:"description,omitempty" example:"Running shoes and apparel"`
} // @name NamedRequest

// Validate performs custom validation on the request.
func (r *NamedRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// ToCategory converts the request into a domain category.
func (r *NamedRequest) ToCategory() model.Category {
	return model.Category{Name: strings.TrimSpace(r.Name), Description: r.Description}
}

// ToBrand converts the request into a domain brand.
func (r *NamedRequest) ToBrand() model.Brand {
	return model.Brand{Name: strings.TrimSpace(r.Name), Description: r.Description}
}

// NamedPatchRequest is the partial update body for a category or a brand.
type NamedPatchRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
} // @name NamedPatchRequest

// Validate performs custom validation on the request.
func (r *NamedPatchRequest) Validate() error {
	if r.Name == nil && r.Description == nil {
		return ErrEmptyPatch
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// ToCategoryPatch converts the request into a domain patch.
func (r *NamedPatchRequest) ToCategoryPatch() model.CategoryPatch {
	return model.CategoryPatch{Name: r.Name, Description: r.Description}
}

// ToBrandPatch converts the request into a domain patch.
func (r *NamedPatchRequest) ToBrandPatch() model.BrandPatch {
	return model.BrandPatch{Name: r.Name, Description: r.Description}
}

// CreateUserRequest represents the JSON request body for creating a user.
//
// @Description Request to create a catalog operator
// @Example {"email": "ops@example.com", "username": "ops", "password": "password123", "name": "Ops Team"}
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ops@example.com"`
	Username string `json:"username" binding:"required,min=3,max=30" example:"ops"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
	Name     string `json:"name,omitempty" example:"Ops Team"`
} // @name CreateUserRequest

// Validate performs custom validation on the request.
func (r *CreateUserRequest) Validate() error {
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(r.Username) < 3 || len(r.Username) > 30 {
		return &ValidationError{Field: "username", Message: "username must have between 3 and 30 characters"}
	}
	if len(r.Password) < 8 {
		return &ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ToModel converts the request into a domain user. The password travels separately.
func (r *CreateUserRequest) ToModel() model.User {
	return model.User{Email: r.Email, Username: r.Username, Name: r.Name}
}

// UserPatchRequest is the partial update body for a user.
type UserPatchRequest struct {
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
	Active   *bool   `json:"active,omitempty"`
} // @name UserPatchRequest

// Validate performs custom validation on the request.
func (r *UserPatchRequest) Validate() error {
	if r.Email == nil && r.Username == nil && r.Password == nil && r.Name == nil && r.Active == nil {
		return ErrEmptyPatch
	}
	if r.Username != nil && (len(*r.Username) < 3 || len(*r.Username) > 30) {
		return &ValidationError{Field: "username", Message: "username must have between 3 and 30 characters"}
	}
	return nil
}

// ToPatch converts the request into a domain patch.
func (r *UserPatchRequest) ToPatch() model.UserPatch {
	return model.UserPatch{
		Email:    r.Email,
		Username: r.Username,
		Password: r.Password,
		Name:     r.Name,
		Active:   r.Active,
	}
}
