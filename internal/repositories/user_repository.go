package repositories

import "computershop/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	UpdatePassword(id, passwordHash string) error
	Count() (int64, error)
}

// RoleRepository defines the interface for role data access.
type RoleRepository interface {
	GetByName(name string) (*models.Role, error)
	// GetOrCreate returns the role with the given name, creating it if
	// absent. Used for boot-time seeding and registration defaults.
	GetOrCreate(name string) (*models.Role, error)
}
