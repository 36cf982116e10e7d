package ports

import (
	"context"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

// CreateQuestionInput carries an unvalidated question as received from the transport layer.
type CreateQuestionInput struct {
	Title   string
	ThemeID int
	Answers []domain.Answer
}

// QuizService defines the catalog use cases.
type QuizService interface {
	CreateTheme(ctx context.Context, title string) (*domain.Theme, error)
	ListThemes(ctx context.Context) ([]domain.Theme, error)
	CreateQuestion(ctx context.Context, input CreateQuestionInput) (*domain.Question, error)
	ListQuestions(ctx context.Context, themeID *int) ([]domain.Question, error)
}
