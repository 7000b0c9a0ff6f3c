package userRepo

import "roomservice/models"

// UserRepository defines methods for staff user data access.
type UserRepository interface {
	// GetByID retrieves a user by id; (nil, nil) when absent.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by email; (nil, nil) when absent.
	GetByEmail(email string) (*models.User, error)
	// GetAll lists users, newest first.
	GetAll() ([]models.User, error)
	Create(user *models.User) error
	UpdateRole(id, role string) (*models.User, error)
	Delete(id string) error
}
