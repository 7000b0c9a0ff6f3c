package user

import (
	"context"
	"fmt"
	"strings"

	"roomservice/models"
	"roomservice/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, utils.BadRequest("email and password are required")
	}

	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("login: failed to fetch user: %w", err)
	}
	if userRec == nil {
		return nil, utils.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, utils.Unauthorized("invalid email or password")
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = utils.AuthCookieMaxAge
	}
	token, err := utils.GenerateToken(userRec.ID, userRec.Role, ttl)
	if err != nil {
		return nil, fmt.Errorf("login: failed to sign token: %w", err)
	}

	s.cachePrincipal(ctx, userRec)

	return &AuthResponse{ID: userRec.ID, User: userRec, Token: token}, nil
}

func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	if s.Cache == nil || userID == "" {
		return nil
	}
	if err := s.Cache.Invalidate(ctx, userID); err != nil {
		return fmt.Errorf("logout: failed to clear auth cache: %w", err)
	}
	return nil
}

func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if userRec == nil {
		return nil, utils.NotFound("user not found")
	}
	return userRec, nil
}

func (s *DefaultUserService) EnsureSuperAdmin(email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("EnsureSuperAdmin: %w", err)
	}
	if existing != nil {
		if existing.Role != models.RoleSuperAdmin {
			utils.GetLogger().Warn("EnsureSuperAdmin: configured email belongs to a non-superadmin account",
				zap.String("email", email), zap.String("role", existing.Role))
		}
		return nil
	}
	_, err = s.createUser(email, password, models.RoleSuperAdmin)
	return err
}

func (s *DefaultUserService) cachePrincipal(ctx context.Context, u *models.User) {
	if s.Cache == nil {
		return
	}
	p := utils.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
	if err := s.Cache.Set(ctx, p); err != nil {
		utils.GetLogger().Warn("failed to cache principal", zap.String("id", u.ID), zap.Error(err))
	}
}

func (s *DefaultUserService) invalidate(ctx context.Context, userID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, userID); err != nil {
		utils.GetLogger().Warn("failed to invalidate principal", zap.String("id", userID), zap.Error(err))
	}
}
