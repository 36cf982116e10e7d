package ports

import (
	"context"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

// QuizRepository is the catalog store for themes and questions.
//
// Find* methods return (nil, nil) when nothing matches. Create* methods enforce title
// uniqueness themselves and return domain.ErrThemeExists / domain.ErrQuestionExists, so a
// lookup followed by a create cannot produce duplicates under concurrent writers.
type QuizRepository interface {
	FindThemeByTitle(ctx context.Context, title string) (*domain.Theme, error)
	FindThemeByID(ctx context.Context, id int) (*domain.Theme, error)
	FindQuestionByTitle(ctx context.Context, title string) (*domain.Question, error)

	CreateTheme(ctx context.Context, title string) (*domain.Theme, error)
	CreateQuestion(ctx context.Context, title string, themeID int, answers []domain.Answer) (*domain.Question, error)

	// ListThemes returns themes in insertion order.
	ListThemes(ctx context.Context) ([]domain.Theme, error)
	// ListQuestions returns all questions, or only those of themeID when it is non-nil.
	ListQuestions(ctx context.Context, themeID *int) ([]domain.Question, error)
}
