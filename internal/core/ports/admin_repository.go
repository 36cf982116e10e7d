package ports

import (
	"context"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

// AdminRepository defines the persistence operations for administrators.
type AdminRepository interface {
	// FindByEmail returns domain.ErrAdminNotFound when no admin has the given email.
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	// Create stores a new admin and assigns its ID.
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
}
