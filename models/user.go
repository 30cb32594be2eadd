package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values as stored. A user with an empty role is treated as "user"
// (no back-office privileges) when a session is issued.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RoleOwner = "owner"
	RoleUser  = "user"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:150" json:"username"`
	Password  string         `gorm:"size:255" json:"-"` // bcrypt hash, never serialized
	Role      string         `gorm:"size:32" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectiveRole returns the stored role, defaulting to "user" when unset.
func (u User) EffectiveRole() string {
	if u.Role == "" {
		return RoleUser
	}
	return u.Role
}
