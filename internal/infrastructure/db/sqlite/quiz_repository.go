package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

// QuizRepository stores themes and questions; answers live in their own table ordered by
// position. UNIQUE constraints on titles make creation reject duplicates.
type QuizRepository struct {
	db *sql.DB
}

func NewQuizRepository(db *sql.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) FindThemeByTitle(ctx context.Context, title string) (*domain.Theme, error) {
	return r.findTheme(ctx, `SELECT id, title FROM theme WHERE title = ?`, title)
}

func (r *QuizRepository) FindThemeByID(ctx context.Context, id int) (*domain.Theme, error) {
	return r.findTheme(ctx, `SELECT id, title FROM theme WHERE id = ?`, id)
}

func (r *QuizRepository) findTheme(ctx context.Context, query string, arg any) (*domain.Theme, error) {
	var t domain.Theme
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&t.ID, &t.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find theme: %w", err)
	}
	return &t, nil
}

func (r *QuizRepository) FindQuestionByTitle(ctx context.Context, title string) (*domain.Question, error) {
	var q domain.Question
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, theme_id FROM question WHERE title = ?`, title,
	).Scan(&q.ID, &q.Title, &q.ThemeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find question: %w", err)
	}

	byQuestion, err := r.answersFor(ctx, []int{q.ID})
	if err != nil {
		return nil, err
	}
	q.Answers = byQuestion[q.ID]
	return &q, nil
}

func (r *QuizRepository) CreateTheme(ctx context.Context, title string) (*domain.Theme, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO theme (title) VALUES (?)`, title)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrThemeExists
		}
		return nil, fmt.Errorf("insert theme: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert theme: %w", err)
	}
	return &domain.Theme{ID: int(id), Title: title}, nil
}

// CreateQuestion inserts the question and its answers in one transaction.
func (r *QuizRepository) CreateQuestion(ctx context.Context, title string, themeID int, answers []domain.Answer) (*domain.Question, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO question (title, theme_id) VALUES (?, ?)`, title, themeID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrQuestionExists
		}
		return nil, fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}

	for i, a := range answers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO answer (question_id, position, title, is_correct) VALUES (?, ?, ?, ?)`,
			id, i, a.Title, a.IsCorrect,
		); err != nil {
			return nil, fmt.Errorf("insert answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &domain.Question{
		ID:      int(id),
		Title:   title,
		ThemeID: themeID,
		Answers: append([]domain.Answer(nil), answers...),
	}, nil
}

func (r *QuizRepository) ListThemes(ctx context.Context) ([]domain.Theme, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title FROM theme ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	themes := []domain.Theme{}
	for rows.Next() {
		var t domain.Theme
		if err := rows.Scan(&t.ID, &t.Title); err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		themes = append(themes, t)
	}
	return themes, rows.Err()
}

func (r *QuizRepository) ListQuestions(ctx context.Context, themeID *int) ([]domain.Question, error) {
	query := `SELECT id, title, theme_id FROM question`
	var args []any
	if themeID != nil {
		query += ` WHERE theme_id = ?`
		args = append(args, *themeID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	questions := []domain.Question{}
	var ids []int
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Title, &q.ThemeID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
		ids = append(ids, q.ID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// Release the single connection before querying answers.
	rows.Close()

	byQuestion, err := r.answersFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].Answers = byQuestion[questions[i].ID]
	}
	return questions, nil
}

func (r *QuizRepository) answersFor(ctx context.Context, ids []int) (map[int][]domain.Answer, error) {
	out := make(map[int][]domain.Answer, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT question_id, title, is_correct FROM answer WHERE question_id IN (`+placeholders+`) ORDER BY question_id, position`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			qid int
			a   domain.Answer
		)
		if err := rows.Scan(&qid, &a.Title, &a.IsCorrect); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out[qid] = append(out[qid], a)
	}
	return out, rows.Err()
}
