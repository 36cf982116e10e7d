package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/quiz-admin/internal/api/metrics"
	"github.com/99minutos/quiz-admin/internal/core/ports"
)

// QuizHandler handles HTTP requests for the theme and question catalog.
type QuizHandler struct {
	service ports.QuizService
}

func NewQuizHandler(service ports.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

// AddTheme handles POST /quiz.add_theme.
//
// @Summary      Create a theme
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        body  body      themeRequest  true  "Theme"
// @Success      200   {object}  domain.Theme
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /quiz.add_theme [post]
func (h *QuizHandler) AddTheme(c echo.Context) error {
	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	theme, err := h.service.CreateTheme(c.Request().Context(), req.Title)
	if err != nil {
		return err
	}
	metrics.ThemesCreatedTotal.Inc()

	return ok(c, theme)
}

// ListThemes handles GET /quiz.list_themes.
//
// @Summary      List themes
// @Tags         quiz
// @Produce      json
// @Success      200  {object}  themesResponse
// @Failure      401  {object}  errorResponse
// @Router       /quiz.list_themes [get]
func (h *QuizHandler) ListThemes(c echo.Context) error {
	themes, err := h.service.ListThemes(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, themesResponse{Themes: themes})
}

// AddQuestion handles POST /quiz.add_question.
//
// @Summary      Create a question
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        body  body      questionRequest  true  "Question with its answers"
// @Success      200   {object}  domain.Question
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /quiz.add_question [post]
func (h *QuizHandler) AddQuestion(c echo.Context) error {
	var req questionRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	q, err := h.service.CreateQuestion(c.Request().Context(), toQuestionInput(req))
	if err != nil {
		return err
	}
	metrics.QuestionsCreatedTotal.Inc()

	return ok(c, q)
}

// ListQuestions handles GET /quiz.list_questions?theme_id=.
//
// @Summary      List questions
// @Tags         quiz
// @Produce      json
// @Param        theme_id  query     int  false  "Only questions of this theme"
// @Success      200       {object}  questionsResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /quiz.list_questions [get]
func (h *QuizHandler) ListQuestions(c echo.Context) error {
	var themeID *int
	if raw := c.QueryParam("theme_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return &ValidationError{
				Message: "theme_id must be an integer",
				Fields:  map[string][]string{"theme_id": {"theme_id must be an integer"}},
			}
		}
		themeID = &id
	}

	questions, err := h.service.ListQuestions(c.Request().Context(), themeID)
	if err != nil {
		return err
	}
	return ok(c, questionsResponse{Questions: questions})
}
