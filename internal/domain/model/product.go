package model

import "time"

// Product represents a sellable catalog item.
//
// @Description Catalog product
// @Example {"id": 1, "name": "Trail Runner", "price": 129.9, "stock": 12, "category_id": 10, "brand_id": 3}
type Product struct {
	ID          int64     `bson:"_id" json:"id" example:"1"`
	Name        string    `bson:"name" json:"name" example:"Trail Runner"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64   `bson:"price" json:"price" example:"129.9"`
	Stock       int       `bson:"stock" json:"stock" example:"12"`
	CategoryID  int64     `bson:"category_id" json:"category_id" example:"10"`
	BrandID     int64     `bson:"brand_id" json:"brand_id" example:"3"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// EntityID implements Entity.
func (p Product) EntityID() int64 { return p.ID }

// WithID implements Entity.
func (p Product) WithID(id int64) Product {
	p.ID = id
	return p
}

// NaturalKey implements Entity.
func (p Product) NaturalKey() string { return p.Name }

// Touch stamps UpdatedAt, and CreatedAt when still zero.
func (p Product) Touch(now time.Time) Product {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return p
}

// ProductPatch carries a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	CategoryID  *int64
	BrandID     *int64
}

// Apply returns a copy of p with every set field of the patch applied.
func (patch ProductPatch) Apply(p Product) Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.BrandID != nil {
		p.BrandID = *patch.BrandID
	}
	return p
}
