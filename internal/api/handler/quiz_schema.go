package handler

import (
	"github.com/99minutos/quiz-admin/internal/core/domain"
	"github.com/99minutos/quiz-admin/internal/core/ports"
)

// errorResponse documents the error envelope written by the API error handler.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type themeRequest struct {
	Title string `json:"title" validate:"required"`
}

type answerRequest struct {
	Title     string `json:"title"      validate:"required"`
	IsCorrect *bool  `json:"is_correct" validate:"required"`
}

type questionRequest struct {
	Title   string          `json:"title"    validate:"required"`
	ThemeID *int            `json:"theme_id" validate:"required"`
	Answers []answerRequest `json:"answers"  validate:"required,dive"`
}

type themesResponse struct {
	Themes []domain.Theme `json:"themes"`
}

type questionsResponse struct {
	Questions []domain.Question `json:"questions"`
}

// toQuestionInput maps the HTTP request to the service DTO. Answer rules are checked by
// the service, not here.
func toQuestionInput(r questionRequest) ports.CreateQuestionInput {
	answers := make([]domain.Answer, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, domain.Answer{Title: a.Title, IsCorrect: *a.IsCorrect})
	}
	return ports.CreateQuestionInput{
		Title:   r.Title,
		ThemeID: *r.ThemeID,
		Answers: answers,
	}
}
