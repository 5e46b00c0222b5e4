package domain

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleVisitor UserRole = "visitor"
	RoleEditor  UserRole = "editor"
	RoleAuthor  UserRole = "author"
	RoleSupport UserRole = "support"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleVisitor, RoleEditor, RoleAuthor, RoleSupport:
		return true
	}
	return false
}

// IsStaff reports whether r belongs to the dashboard staff.
func (r UserRole) IsStaff() bool {
	return r.Valid() && r != RoleVisitor
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"size:20;not null;default:visitor"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
