package ports

import (
	"context"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Identity, error)
}
