package model

import "time"

// Category groups products.
type Category struct {
	ID          int64     `bson:"_id" json:"id" example:"10"`
	Name        string    `bson:"name" json:"name" example:"Shoes"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

func (c Category) EntityID() int64 { return c.ID }

func (c Category) WithID(id int64) Category {
	c.ID = id
	return c
}

func (c Category) NaturalKey() string { return c.Name }

func (c Category) Touch(now time.Time) Category {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	return c
}

// CategoryPatch carries a partial category update.
type CategoryPatch struct {
	Name        *string
	Description *string
}

// Apply returns a copy of c with the patch applied.
func (patch CategoryPatch) Apply(c Category) Category {
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	return c
}
