package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

const adminsCollection = "admins"

type AdminRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{db: db, coll: db.Collection(adminsCollection)}
}

type mongoAdmin struct {
	ID           int    `bson:"_id"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	id, err := nextSequence(ctx, r.db, adminsCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoAdmin{ID: id, Email: admin.Email, PasswordHash: admin.PasswordHash}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.FindByEmail(ctx, admin.Email)
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}

	return &domain.Admin{ID: id, Email: doc.Email, PasswordHash: doc.PasswordHash}, nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var ma mongoAdmin
	found, err := findOne(ctx, r.coll, bson.M{"email": email}, &ma)
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if !found {
		return nil, domain.ErrAdminNotFound
	}

	return &domain.Admin{ID: ma.ID, Email: ma.Email, PasswordHash: ma.PasswordHash}, nil
}
