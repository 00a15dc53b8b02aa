package model

import "time"

// Brand is the manufacturer or label of a product.
type Brand struct {
	ID          int64     `bson:"_id" json:"id" example:"3"`
	Name        string    `bson:"name" json:"name" example:"Acme"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

func (b Brand) EntityID() int64 { return b.ID }

func (b Brand) WithID(id int64) Brand {
	b.ID = id
	return b
}

func (b Brand) NaturalKey() string { return b.Name }

func (b Brand) Touch(now time.Time) Brand {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	return b
}

// BrandPatch carries a partial brand update.
type BrandPatch struct {
	Name        *string
	Description *string
}

// Apply returns a copy of b with the patch applied.
func (patch BrandPatch) Apply(b Brand) Brand {
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	return b
}
