package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"roomservice/database"
	"roomservice/models"
	"roomservice/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// assignableRoles are the roles staff may hand out. SUPERADMIN is only ever
// created at bootstrap.
var assignableRoles = map[string]bool{
	models.RoleUser:  true,
	models.RoleAdmin: true,
}

func (s *DefaultUserService) AddUser(email, password, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, utils.BadRequest("email and password are required")
	}
	if role == "" {
		role = models.RoleUser
	}
	if role == models.RoleSuperAdmin {
		return nil, utils.Forbidden("SUPERADMIN cannot be assigned")
	}
	if !assignableRoles[role] {
		return nil, utils.BadRequest("role must be USER or ADMIN")
	}
	if len(password) < minPasswordLength {
		return nil, utils.BadRequest(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("AddUser: %w", err)
	}
	if existing != nil {
		return nil, utils.BadRequest("email already in use")
	}
	return s.createUser(email, password, role)
}

func (s *DefaultUserService) createUser(email, password, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *DefaultUserService) ListUsers() ([]models.User, error) {
	return s.Repo.GetAll()
}

func (s *DefaultUserService) UpdateUserRole(ctx context.Context, userID, newRole string) (*models.User, error) {
	if userID == "" || newRole == "" {
		return nil, utils.BadRequest("userId and newRole are required")
	}
	if newRole == models.RoleSuperAdmin {
		return nil, utils.Forbidden("SUPERADMIN cannot be assigned")
	}
	if !assignableRoles[newRole] {
		return nil, utils.BadRequest("role must be USER or ADMIN")
	}

	target, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if target.Role == models.RoleSuperAdmin {
		return nil, utils.Forbidden("the SUPERADMIN role cannot be changed")
	}

	updated, err := s.Repo.UpdateRole(userID, newRole)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return updated, nil
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return utils.BadRequest("userId is required")
	}
	target, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if target.Role == models.RoleSuperAdmin {
		return utils.Forbidden("SUPERADMIN cannot be deleted")
	}

	if err := s.Repo.Delete(userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.NotFound("user not found")
		}
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}
