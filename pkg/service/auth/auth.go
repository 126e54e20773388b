// Package auth implements JWT login and token parsing. The ledger engine
// itself is auth-agnostic; this is the outer surface the HTTP handlers
// use to resolve the current user.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/greenpoints/pkg/config"
	"github.com/amirasaad/greenpoints/pkg/domain/user"
	"github.com/amirasaad/greenpoints/pkg/dto"
	"github.com/amirasaad/greenpoints/pkg/repository"
	usersvc "github.com/amirasaad/greenpoints/pkg/service/user"
	"github.com/amirasaad/greenpoints/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned when the email or password is wrong.
// The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service issues and parses JWTs and checks credentials.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
	now    func() time.Time
}

// New creates an auth service.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger.With("service", "auth"), now: time.Now}
}

// Login verifies the credentials, records the login time and returns the
// user's read model.
func (s *Service) Login(ctx context.Context, email, password string) (*dto.UserRead, error) {
	var r dto.UserRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := repo.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}
		if !utils.CheckPasswordHash(password, u.Password) {
			return ErrInvalidCredentials
		}
		u.LastLogin = s.now()
		if err := repo.Save(ctx, u); err != nil {
			return err
		}
		r = usersvc.ToUserRead(u)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.logger.Warn("login rejected", "email", email)
		} else {
			s.logger.Error("login failed", "email", email, "error", err)
		}
		return nil, err
	}
	s.logger.Info("login successful", "user_id", r.ID)
	return &r, nil
}

// GenerateToken signs a JWT for the user.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"email":   u.Email,
		"exp":     s.now().Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// CurrentUserID extracts the user ID from a verified token.
func (s *Service) CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("unexpected token claims")
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("token has no user_id claim")
	}
	return uuid.Parse(raw)
}

// ResolveUser loads the user the token belongs to.
func (s *Service) ResolveUser(ctx context.Context, token *jwt.Token) (*user.User, error) {
	userID, err := s.CurrentUserID(token)
	if err != nil {
		return nil, err
	}
	var u *user.User
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	return u, err
}
