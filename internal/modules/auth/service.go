package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"clinic/internal/domain"
	"clinic/internal/repository"
)

// Service contains all business logic for authentication and user management
type Service struct {
	users    UserRepositoryInterface
	jwt      tokenIssuer
	tokenTTL time.Duration
}

func NewService(users UserRepositoryInterface, jwt tokenIssuer, tokenTTL time.Duration) *Service {
	return &Service{users: users, jwt: jwt, tokenTTL: tokenTTL}
}

// Register creates a visitor account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	return s.create(ctx, req.Username, req.Email, req.Password, domain.RoleVisitor)
}

// CreateUser lets an admin create an account with any known role.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}
	return s.create(ctx, req.Username, req.Email, req.Password, req.Role)
}

func (s *Service) create(ctx context.Context, username, email, password string, role domain.UserRole) (*domain.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(username),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResponse{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context, role domain.UserRole, p repository.Page) ([]domain.User, error) {
	if role != "" && !role.Valid() {
		return nil, ErrInvalidRole
	}
	users, err := s.users.List(ctx, role, p)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	if err := s.users.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("set user active: %w", err)
	}
	return nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
