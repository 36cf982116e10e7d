package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

const (
	collectionThemes    = "themes"
	collectionQuestions = "questions"
)

// QuizRepository stores themes and questions. Unique indexes on title make creation
// itself reject duplicates.
type QuizRepository struct {
	db        *mongo.Database
	themes    *mongo.Collection
	questions *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{
		db:        db,
		themes:    db.Collection(collectionThemes),
		questions: db.Collection(collectionQuestions),
	}
}

func (r *QuizRepository) FindThemeByTitle(ctx context.Context, title string) (*domain.Theme, error) {
	return r.findTheme(ctx, bson.M{"title": title})
}

func (r *QuizRepository) FindThemeByID(ctx context.Context, id int) (*domain.Theme, error) {
	return r.findTheme(ctx, bson.M{"_id": id})
}

func (r *QuizRepository) findTheme(ctx context.Context, filter bson.M) (*domain.Theme, error) {
	var t domain.Theme
	found, err := findOne(ctx, r.themes, filter, &t)
	if err != nil {
		return nil, fmt.Errorf("find theme: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &t, nil
}

func (r *QuizRepository) FindQuestionByTitle(ctx context.Context, title string) (*domain.Question, error) {
	var q domain.Question
	found, err := findOne(ctx, r.questions, bson.M{"title": title}, &q)
	if err != nil {
		return nil, fmt.Errorf("find question: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &q, nil
}

func (r *QuizRepository) CreateTheme(ctx context.Context, title string) (*domain.Theme, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionThemes)
	if err != nil {
		return nil, err
	}

	t := domain.Theme{ID: id, Title: title}
	if _, err := r.themes.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrThemeExists
		}
		return nil, fmt.Errorf("insert theme: %w", err)
	}
	return &t, nil
}

func (r *QuizRepository) CreateQuestion(ctx context.Context, title string, themeID int, answers []domain.Answer) (*domain.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionQuestions)
	if err != nil {
		return nil, err
	}

	q := domain.Question{ID: id, Title: title, ThemeID: themeID, Answers: answers}
	if _, err := r.questions.InsertOne(ctx, q); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrQuestionExists
		}
		return nil, fmt.Errorf("insert question: %w", err)
	}
	return &q, nil
}

func (r *QuizRepository) ListThemes(ctx context.Context) ([]domain.Theme, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.themes.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find themes: %w", err)
	}
	themes := []domain.Theme{}
	if err := cur.All(ctx, &themes); err != nil {
		return nil, fmt.Errorf("decode themes: %w", err)
	}
	return themes, nil
}

func (r *QuizRepository) ListQuestions(ctx context.Context, themeID *int) ([]domain.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if themeID != nil {
		filter["theme_id"] = *themeID
	}

	cur, err := r.questions.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	questions := []domain.Question{}
	if err := cur.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return questions, nil
}

// EnsureIndexes creates the unique title indexes and the admin email index.
func (r *QuizRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	if _, err := r.themes.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "title", Value: 1}}, Options: unique}); err != nil {
		return fmt.Errorf("themes index: %w", err)
	}
	if _, err := r.questions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "theme_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("questions index: %w", err)
	}
	if _, err := r.db.Collection(adminsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}); err != nil {
		return fmt.Errorf("admins index: %w", err)
	}
	return nil
}
