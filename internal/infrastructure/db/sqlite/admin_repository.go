package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM admin WHERE email = ?`, email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &a, nil
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO admin (email, password_hash) VALUES (?, ?)`, admin.Email, admin.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return r.FindByEmail(ctx, admin.Email)
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return &domain.Admin{ID: int(id), Email: admin.Email, PasswordHash: admin.PasswordHash}, nil
}
