package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/99minutos/quiz-admin/internal/api/handler"
	"github.com/99minutos/quiz-admin/internal/api/middleware"
	"github.com/99minutos/quiz-admin/internal/core/ports"
	"github.com/99minutos/quiz-admin/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Log        zerolog.Logger
	Auth       ports.AuthService
	Quiz       ports.QuizService
	Sessions   ports.SessionStore
	Dispatcher handler.UpdateDispatcher
	BotSecret  string

	// HealthChecks are run by GET /health/ready, keyed by dependency name.
	HealthChecks map[string]handlers.CheckFunc

	// ExposeInternalErrors puts the error text of unexpected failures in the 500 message.
	ExposeInternalErrors bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.ExposeInternalErrors)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.SessionAuth(d.Sessions, d.Log))

	guard := middleware.RequireAdmin()

	// --- Admin routes ---
	adminHandler := handler.NewAdminHandler(d.Auth, d.Sessions)
	e.POST("/admin.login", adminHandler.Login)
	e.GET("/admin.current", adminHandler.Current, guard)
	e.POST("/admin.logout", adminHandler.Logout, guard)

	// --- Quiz routes ---
	quizHandler := handler.NewQuizHandler(d.Quiz)
	e.POST("/quiz.add_theme", quizHandler.AddTheme, guard)
	e.GET("/quiz.list_themes", quizHandler.ListThemes, guard)
	e.POST("/quiz.add_question", quizHandler.AddQuestion, guard)
	e.GET("/quiz.list_questions", quizHandler.ListQuestions, guard)

	// --- Bot webhook (shared secret, no session) ---
	if d.Dispatcher != nil {
		botHandler := handler.NewBotHandler(d.Dispatcher, d.BotSecret)
		e.POST("/bot.updates", botHandler.Updates)
	}

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
