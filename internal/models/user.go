package models

import "gorm.io/gorm"

// Role names. New registrations get the customer role; the admin role is
// seeded at boot and unlocks the back-office routes.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Role is a named account type referenced by many users.
type Role struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=2,max=50"`
}

// User represents an account of the store. Password holds the bcrypt hash
// and is never serialized.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	RoleID     string `json:"role_id" gorm:"type:varchar(36)"`
	Role       *Role  `json:"role,omitempty"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
