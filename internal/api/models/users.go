package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of site roles. Staff/superuser escalation is a
// separate pair of flags on User and is never derived from the role.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"column:password_hash" json:"-"` // Not show in JSON
	Role        Role      `gorm:"type:varchar(20);default:'user';not null" json:"role"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Bio         string    `gorm:"type:text" json:"bio"`
	IsStaff     bool      `gorm:"default:false" json:"is_staff"`
	IsSuperuser bool      `gorm:"default:false" json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

// The three predicates are mutually exclusive: each compares the role field
// only. IsStaff/IsSuperuser are checked separately by the permission layer.

func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin
}

func (user *User) IsModerator() bool {
	return user.Role == RoleModerator
}

func (user *User) IsUser() bool {
	return user.Role == RoleUser
}

func (User) TableName() string {
	return "users"
}
