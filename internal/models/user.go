package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password_hash" json:"-"`
	Role      Role      `db:"role" json:"role"`
	Name      *string   `db:"name" json:"name,omitempty"`
	Bio       *string   `db:"bio" json:"bio,omitempty"`
	Avatar    *string   `db:"avatar" json:"avatar,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Author is the slice of a user embedded in public blog responses.
// No credential or profile fields.
type Author struct {
	ID    int64  `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Role  Role   `db:"role" json:"role"`
}

func (u *User) Author() Author {
	return Author{ID: u.ID, Email: u.Email, Role: u.Role}
}
