package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/quiz-admin/internal/core/domain"
	"github.com/99minutos/quiz-admin/internal/core/ports"
)

type QuizService struct {
	repo   ports.QuizRepository
	logger zerolog.Logger
}

func NewQuizService(repo ports.QuizRepository, logger zerolog.Logger) *QuizService {
	return &QuizService{repo: repo, logger: logger}
}

// CreateTheme creates a theme with a unique title.
func (s *QuizService) CreateTheme(ctx context.Context, title string) (*domain.Theme, error) {
	existing, err := s.repo.FindThemeByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("create theme: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrThemeExists
	}

	theme, err := s.repo.CreateTheme(ctx, title)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("theme_id", theme.ID).Str("title", theme.Title).Msg("theme created")
	return theme, nil
}

func (s *QuizService) ListThemes(ctx context.Context) ([]domain.Theme, error) {
	themes, err := s.repo.ListThemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	return themes, nil
}

// CreateQuestion runs the checks in a fixed order so the reported failure is deterministic:
// title conflict, then unknown theme, then the answer-set rules. Nothing is written unless
// every check passes.
func (s *QuizService) CreateQuestion(ctx context.Context, in ports.CreateQuestionInput) (*domain.Question, error) {
	existing, err := s.repo.FindQuestionByTitle(ctx, in.Title)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrQuestionExists
	}

	theme, err := s.repo.FindThemeByID(ctx, in.ThemeID)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	if theme == nil {
		return nil, domain.ErrThemeNotFound
	}

	answers, err := domain.ParseAnswers(in.Answers)
	if err != nil {
		s.logger.Debug().Err(err).Str("title", in.Title).Msg("question rejected")
		return nil, err
	}

	question, err := s.repo.CreateQuestion(ctx, in.Title, theme.ID, answers)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("question_id", question.ID).
		Int("theme_id", question.ThemeID).
		Int("answers", len(question.Answers)).
		Msg("question created")
	return question, nil
}

// ListQuestions returns every question, or only those of themeID when it is set.
func (s *QuizService) ListQuestions(ctx context.Context, themeID *int) ([]domain.Question, error) {
	questions, err := s.repo.ListQuestions(ctx, themeID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}
