package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/teetime/campusride/internal/domain/user"
	"github.com/teetime/campusride/internal/security"
)

// Keep these interfaces small so tests can fake them easily.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// AuthService owns the registration and login rules.
type AuthService struct {
	users          UserStore
	allowedDomains []string
}

func NewAuthService(users UserStore, allowedDomains []string) *AuthService {
	return &AuthService{
		users:          users,
		allowedDomains: allowedDomains,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (user.User, error) {
	if !s.allowedDomain(email) {
		return user.User{}, invalid("email", "email must be a valid IE University email")
	}

	if strings.TrimSpace(name) == "" {
		return user.User{}, invalid("name", "name cannot be empty")
	}

	if len(password) < 4 {
		return user.User{}, invalid("password", "password must be at least 4 characters")
	}

	if !user.ValidRole(role) {
		return user.User{}, invalid("role", "role must be PASSENGER, DRIVER or BOTH")
	}

	hash := security.HashPassword(password)

	// the store re-checks email uniqueness under its lock; user.ErrEmailTaken
	// surfaces unchanged as the conflict error
	return s.users.Create(ctx, name, email, hash, role)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (user.User, error) {
	found, err := s.users.GetByEmail(ctx, email)

	if err != nil {
		return user.User{}, fmt.Errorf("%w: user not found", ErrInvalidCredentials)
	}

	err = security.CheckPassword(found.PasswordHash, password)

	if err != nil {
		return user.User{}, fmt.Errorf("%w: wrong password", ErrInvalidCredentials)
	}

	return found, nil
}

func (s *AuthService) allowedDomain(email string) bool {
	for _, domain := range s.allowedDomains {
		if strings.Contains(email, domain) {
			return true
		}
	}

	return false
}
