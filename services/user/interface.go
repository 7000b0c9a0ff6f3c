package user

import (
	"context"
	"time"

	userRepo "roomservice/database/repository/user"
	"roomservice/models"
	"roomservice/utils"
)

type UserService interface {
	// Authentication
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Logout(ctx context.Context, userID string) error
	GetUserByID(userID string) (*models.User, error)

	// Staff management
	AddUser(email, password, role string) (*models.User, error)
	ListUsers() ([]models.User, error)
	UpdateUserRole(ctx context.Context, userID, newRole string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error

	// EnsureSuperAdmin creates the super admin account once.
	EnsureSuperAdmin(email, password string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Cache    utils.AuthCache // optional
	TokenTTL time.Duration
}

// AuthResponse is returned on login; the token itself travels in a cookie.
type AuthResponse struct {
	ID    string       `json:"id"`
	User  *models.User `json:"user"`
	Token string       `json:"-"`
}

const minPasswordLength = 6
