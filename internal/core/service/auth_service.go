package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/quiz-admin/internal/core/domain"
	"github.com/99minutos/quiz-admin/internal/core/ports"
)

// AuthService implements admin login and seeding.
type AuthService struct {
	repo ports.AdminRepository
	log  zerolog.Logger
}

func NewAuthService(repo ports.AdminRepository, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, log: log}
}

// Login checks the credentials and returns the identity to store in the session.
// An unknown email and a wrong password both yield domain.ErrInvalidCredentials so the
// caller cannot tell which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !admin.IsPasswordValid(password) {
		s.log.Info().Int("admin_id", admin.ID).Msg("login rejected: bad password")
		return nil, domain.ErrInvalidCredentials
	}

	id := admin.Identity()
	s.log.Info().Int("admin_id", id.ID).Msg("admin logged in")
	return &id, nil
}

// EnsureAdmin creates the admin with the given credentials unless one with that email
// already exists. It is called once at startup with the configured seed admin.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (*domain.Admin, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Admin{
		Email:        email,
		PasswordHash: domain.HashPassword(password),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("admin_id", created.ID).Str("email", created.Email).Msg("seed admin created")
	return created, nil
}
