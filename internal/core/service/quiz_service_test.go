package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/quiz-admin/internal/core/domain"
	"github.com/99minutos/quiz-admin/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubQuizRepo struct {
	themes    []domain.Theme
	questions []domain.Question
	findErr   error // if set, every Find* returns this error
	creates   int   // number of successful CreateQuestion calls
}

func (r *stubQuizRepo) FindThemeByTitle(_ context.Context, title string) (*domain.Theme, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, t := range r.themes {
		if t.Title == title {
			clone := t
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubQuizRepo) FindThemeByID(_ context.Context, id int) (*domain.Theme, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, t := range r.themes {
		if t.ID == id {
			clone := t
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubQuizRepo) FindQuestionByTitle(_ context.Context, title string) (*domain.Question, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, q := range r.questions {
		if q.Title == title {
			clone := q
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubQuizRepo) CreateTheme(_ context.Context, title string) (*domain.Theme, error) {
	t := domain.Theme{ID: len(r.themes) + 1, Title: title}
	r.themes = append(r.themes, t)
	return &t, nil
}

func (r *stubQuizRepo) CreateQuestion(_ context.Context, title string, themeID int, answers []domain.Answer) (*domain.Question, error) {
	q := domain.Question{ID: len(r.questions) + 1, Title: title, ThemeID: themeID, Answers: answers}
	r.questions = append(r.questions, q)
	r.creates++
	return &q, nil
}

func (r *stubQuizRepo) ListThemes(_ context.Context) ([]domain.Theme, error) {
	return append([]domain.Theme(nil), r.themes...), nil
}

func (r *stubQuizRepo) ListQuestions(_ context.Context, themeID *int) ([]domain.Question, error) {
	var out []domain.Question
	for _, q := range r.questions {
		if themeID != nil && q.ThemeID != *themeID {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func newQuizService(repo *stubQuizRepo) *QuizService {
	return NewQuizService(repo, zerolog.Nop())
}

func validAnswers() []domain.Answer {
	return []domain.Answer{
		{Title: "Paris", IsCorrect: true},
		{Title: "Lyon"},
		{Title: "Nice"},
	}
}

// ---------------------------------------------------------------------------
// Themes
// ---------------------------------------------------------------------------

func TestQuizService_CreateTheme(t *testing.T) {
	repo := &stubQuizRepo{}
	svc := newQuizService(repo)

	theme, err := svc.CreateTheme(context.Background(), "geography")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if theme.ID != 1 || theme.Title != "geography" {
		t.Fatalf("unexpected theme: %+v", theme)
	}

	if _, err := svc.CreateTheme(context.Background(), "geography"); !errors.Is(err, domain.ErrThemeExists) {
		t.Fatalf("expected ErrThemeExists, got %v", err)
	}
	if len(repo.themes) != 1 {
		t.Fatalf("expected exactly one theme, got %d", len(repo.themes))
	}
}

func TestQuizService_ListThemes_InsertionOrder(t *testing.T) {
	repo := &stubQuizRepo{}
	svc := newQuizService(repo)
	for _, title := range []string{"b", "a", "c"} {
		if _, err := svc.CreateTheme(context.Background(), title); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	themes, err := svc.ListThemes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(themes) != 3 || themes[0].Title != "b" || themes[2].Title != "c" {
		t.Fatalf("unexpected order: %+v", themes)
	}
}

// ---------------------------------------------------------------------------
// Questions
// ---------------------------------------------------------------------------

func TestQuizService_CreateQuestion_Success(t *testing.T) {
	repo := &stubQuizRepo{themes: []domain.Theme{{ID: 1, Title: "geo"}}}
	svc := newQuizService(repo)

	q, err := svc.CreateQuestion(context.Background(), ports.CreateQuestionInput{
		Title:   "Capital of France?",
		ThemeID: 1,
		Answers: validAnswers(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ID != 1 || q.ThemeID != 1 {
		t.Fatalf("unexpected question: %+v", q)
	}
	for i, a := range validAnswers() {
		if q.Answers[i] != a {
			t.Fatalf("answer %d: expected %+v, got %+v", i, a, q.Answers[i])
		}
	}
}

func TestQuizService_CreateQuestion_CheckOrder(t *testing.T) {
	tests := []struct {
		name    string
		input   ports.CreateQuestionInput
		wantErr error
	}{
		{
			// duplicate title wins over unknown theme and bad answers
			name:    "duplicate title",
			input:   ports.CreateQuestionInput{Title: "existing", ThemeID: 99, Answers: nil},
			wantErr: domain.ErrQuestionExists,
		},
		{
			// unknown theme wins over bad answers
			name:    "unknown theme",
			input:   ports.CreateQuestionInput{Title: "new", ThemeID: 99, Answers: nil},
			wantErr: domain.ErrThemeNotFound,
		},
		{
			name:    "unknown theme with valid answers",
			input:   ports.CreateQuestionInput{Title: "new", ThemeID: 99, Answers: validAnswers()},
			wantErr: domain.ErrThemeNotFound,
		},
		{
			name:    "one answer",
			input:   ports.CreateQuestionInput{Title: "new", ThemeID: 1, Answers: []domain.Answer{{Title: "a", IsCorrect: true}}},
			wantErr: domain.ErrNotEnoughAnswers,
		},
		{
			name: "two correct",
			input: ports.CreateQuestionInput{Title: "new", ThemeID: 1, Answers: []domain.Answer{
				{Title: "a", IsCorrect: true}, {Title: "b", IsCorrect: true},
			}},
			wantErr: domain.ErrMultipleCorrectAnswers,
		},
		{
			name: "none correct",
			input: ports.CreateQuestionInput{Title: "new", ThemeID: 1, Answers: []domain.Answer{
				{Title: "a"}, {Title: "b"},
			}},
			wantErr: domain.ErrNoCorrectAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubQuizRepo{
				themes:    []domain.Theme{{ID: 1, Title: "geo"}},
				questions: []domain.Question{{ID: 1, Title: "existing", ThemeID: 1}},
			}
			svc := newQuizService(repo)

			_, err := svc.CreateQuestion(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if repo.creates != 0 {
				t.Fatalf("expected no question to be persisted")
			}
		})
	}
}

func TestQuizService_CreateQuestion_RepoFailure(t *testing.T) {
	repo := &stubQuizRepo{findErr: errors.New("mongo down")}
	svc := newQuizService(repo)

	_, err := svc.CreateQuestion(context.Background(), ports.CreateQuestionInput{Title: "q", ThemeID: 1, Answers: validAnswers()})
	if err == nil || errors.Is(err, domain.ErrInvalidQuestion) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestQuizService_ListQuestions_Filter(t *testing.T) {
	repo := &stubQuizRepo{
		themes: []domain.Theme{{ID: 1, Title: "geo"}, {ID: 2, Title: "math"}},
		questions: []domain.Question{
			{ID: 1, Title: "q1", ThemeID: 1},
			{ID: 2, Title: "q2", ThemeID: 2},
			{ID: 3, Title: "q3", ThemeID: 1},
		},
	}
	svc := newQuizService(repo)

	all, err := svc.ListQuestions(context.Background(), nil)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 questions, got %d (%v)", len(all), err)
	}

	themeID := 1
	filtered, err := svc.ListQuestions(context.Background(), &themeID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(filtered))
	}
	for _, q := range filtered {
		if q.ThemeID != 1 {
			t.Fatalf("unexpected theme in filtered list: %+v", q)
		}
	}
}
