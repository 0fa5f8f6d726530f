// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role is the access level assigned to a user account.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the Critiq application.
//
// ConfirmationHash holds a bcrypt digest of the most recently issued
// confirmation code; overwriting it invalidates any earlier code, so the
// last signup for a username always wins.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	Username  string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
	Bio       string `json:"bio"`
	Role      Role   `gorm:"size:32;not null;default:user" json:"role"`
	IsStaff   bool   `gorm:"not null;default:false" json:"-"`

	ConfirmationHash     string     `gorm:"size:128" json:"-"`
	ConfirmationIssuedAt *time.Time `json:"-"`
	Confirmed            bool       `gorm:"not null;default:false" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Reviews  []Review  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsAdmin reports whether the user holds admin privileges, either through
// the admin role or the staff flag.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsStaff
}

// IsModerator reports whether the user is a moderator.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
