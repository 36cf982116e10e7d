// Package memory holds process-local implementations of the store ports. Data lives as
// long as the process; it is the default backend and the one used by end-to-end tests.
package memory

import (
	"context"
	"sync"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

// Database keeps admins, themes and questions in insertion order.
// IDs are dense and 1-based: the next id is the current count plus one.
type Database struct {
	mu        sync.RWMutex
	admins    []domain.Admin
	themes    []domain.Theme
	questions []domain.Question
}

func NewDatabase() *Database {
	return &Database{}
}

// Clear drops themes and questions. Admins are kept.
func (db *Database) Clear() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.themes = nil
	db.questions = nil
}

// --- admins ---

func (db *Database) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, a := range db.admins {
		if a.Email == email {
			clone := a
			return &clone, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (db *Database) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, a := range db.admins {
		if a.Email == admin.Email {
			clone := a
			return &clone, nil
		}
	}
	created := *admin
	created.ID = len(db.admins) + 1
	db.admins = append(db.admins, created)
	return &created, nil
}

// --- themes ---

func (db *Database) FindThemeByTitle(_ context.Context, title string) (*domain.Theme, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if i := db.themeIndexByTitle(title); i >= 0 {
		t := db.themes[i]
		return &t, nil
	}
	return nil, nil
}

func (db *Database) FindThemeByID(_ context.Context, id int) (*domain.Theme, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, t := range db.themes {
		if t.ID == id {
			clone := t
			return &clone, nil
		}
	}
	return nil, nil
}

func (db *Database) CreateTheme(_ context.Context, title string) (*domain.Theme, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.themeIndexByTitle(title) >= 0 {
		return nil, domain.ErrThemeExists
	}
	t := domain.Theme{ID: len(db.themes) + 1, Title: title}
	db.themes = append(db.themes, t)
	return &t, nil
}

func (db *Database) ListThemes(_ context.Context) ([]domain.Theme, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]domain.Theme, len(db.themes))
	copy(out, db.themes)
	return out, nil
}

func (db *Database) themeIndexByTitle(title string) int {
	for i, t := range db.themes {
		if t.Title == title {
			return i
		}
	}
	return -1
}

// --- questions ---

func (db *Database) FindQuestionByTitle(_ context.Context, title string) (*domain.Question, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, q := range db.questions {
		if q.Title == title {
			clone := cloneQuestion(q)
			return &clone, nil
		}
	}
	return nil, nil
}

func (db *Database) CreateQuestion(_ context.Context, title string, themeID int, answers []domain.Answer) (*domain.Question, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, q := range db.questions {
		if q.Title == title {
			return nil, domain.ErrQuestionExists
		}
	}
	q := domain.Question{
		ID:      len(db.questions) + 1,
		Title:   title,
		ThemeID: themeID,
		Answers: append([]domain.Answer(nil), answers...),
	}
	db.questions = append(db.questions, q)
	out := cloneQuestion(q)
	return &out, nil
}

func (db *Database) ListQuestions(_ context.Context, themeID *int) ([]domain.Question, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]domain.Question, 0, len(db.questions))
	for _, q := range db.questions {
		if themeID != nil && q.ThemeID != *themeID {
			continue
		}
		out = append(out, cloneQuestion(q))
	}
	return out, nil
}

func cloneQuestion(q domain.Question) domain.Question {
	q.Answers = append([]domain.Answer(nil), q.Answers...)
	return q
}
