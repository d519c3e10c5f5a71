package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"futstore-be/internal/logger"
	"futstore-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
)

type Service interface {
	Login(ctx context.Context, email, password string) (string, *User, error)
	Register(ctx context.Context, name, email, password, role string) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Name, u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}

	logger.FromCtx(ctx).Info("admin login",
		zap.Uint("user_id", u.ID),
		zap.String("role", u.Role),
	)

	return token, u, nil
}

func (s *service) Register(ctx context.Context, name, email, password, role string) (*User, error) {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleSuperAdmin {
		return nil, ErrForbidden
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" {
		return nil, errors.New("name and email are required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if role != utils.RoleAdmin && role != utils.RoleSuperAdmin {
		return nil, errors.New("invalid role")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.repo.Create(ctx, u); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return u, nil
}
