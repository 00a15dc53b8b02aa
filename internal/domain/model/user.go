package model

import "time"

// User represents an operator of the catalog backend.
type User struct {
	ID        int64     `bson:"_id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Username  string    `bson:"username" json:"username"`
	Password  string    `bson:"password" json:"password,omitempty"` // bcrypt hash, never rendered by the API
	Name      string    `bson:"name" json:"name"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (u User) EntityID() int64 { return u.ID }

func (u User) WithID(id int64) User {
	u.ID = id
	return u
}

// NaturalKey returns the email, which is unique across users.
func (u User) NaturalKey() string { return u.Email }

func (u User) Touch(now time.Time) User {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return u
}

// UserPatch carries a partial user update. Password is plain text and gets
// hashed by the user service before it reaches the repository.
type UserPatch struct {
	Email    *string
	Username *string
	Password *string
	Name     *string
	Active   *bool
}
