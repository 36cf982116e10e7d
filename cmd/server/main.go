package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/quiz-admin/internal/api"
	"github.com/99minutos/quiz-admin/internal/core/ports"
	"github.com/99minutos/quiz-admin/internal/core/service"
	"github.com/99minutos/quiz-admin/internal/infrastructure/chat"
	"github.com/99minutos/quiz-admin/internal/infrastructure/config"
	"github.com/99minutos/quiz-admin/internal/infrastructure/db/memory"
	mongostore "github.com/99minutos/quiz-admin/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/quiz-admin/internal/infrastructure/db/redis"
	"github.com/99minutos/quiz-admin/internal/infrastructure/db/sqlite"
	"github.com/99minutos/quiz-admin/internal/infrastructure/http/handlers"
	"github.com/99minutos/quiz-admin/internal/infrastructure/queue"
	"github.com/99minutos/quiz-admin/internal/infrastructure/session"
	"github.com/99minutos/quiz-admin/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// stores is the persistence selected by configuration.
type stores struct {
	admins  ports.AdminRepository
	quiz    ports.QuizRepository
	checks  map[string]handlers.CheckFunc
	closers []func(context.Context) error
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "quiz-admin",
	})

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, c := range st.closers {
			if err := c(closeCtx); err != nil {
				log.Warn().Err(err).Msg("close store")
			}
		}
	}()

	sessions, dedup, err := openSessions(ctx, cfg, st)
	if err != nil {
		return err
	}

	auth := service.NewAuthService(st.admins, log)
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if _, err := auth.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	} else {
		log.Warn().Msg("ADMIN_EMAIL/ADMIN_PASSWORD not set, no admin seeded")
	}

	bot := service.NewBotManager(chat.NewLogSender(log), dedup, cfg.Bot.Reply, log)
	dispatcher := queue.NewDispatcher(cfg.Bot.Workers, bot, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Log:                  log,
		Auth:                 auth,
		Quiz:                 service.NewQuizService(st.quiz, log),
		Sessions:             sessions,
		Dispatcher:           dispatcher,
		BotSecret:            cfg.Bot.Secret,
		HealthChecks:         st.checks,
		ExposeInternalErrors: cfg.ExposeInternalErrors,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("storage", cfg.Storage).
			Str("sessions", cfg.Session.Backend).
			Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	st := &stores{checks: map[string]handlers.CheckFunc{}}

	switch cfg.Storage {
	case config.StorageMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		quiz := mongostore.NewQuizRepository(db)
		if err := quiz.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		st.admins = mongostore.NewAdminRepository(db)
		st.quiz = quiz
		st.checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		st.closers = append(st.closers, client.Disconnect)

	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		st.admins = sqlite.NewAdminRepository(db)
		st.quiz = sqlite.NewQuizRepository(db)
		st.checks["sqlite"] = db.PingContext
		st.closers = append(st.closers, func(context.Context) error { return db.Close() })

	default:
		db := memory.NewDatabase()
		st.admins = db
		st.quiz = db
	}

	log.Info().Str("storage", cfg.Storage).Msg("catalog store ready")
	return st, nil
}

// openSessions builds the session store. The dedup is non-nil only when Redis is configured.
func openSessions(ctx context.Context, cfg *config.Config, st *stores) (ports.SessionStore, ports.UpdateDedup, error) {
	if cfg.UsesRedis() {
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		st.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		st.closers = append(st.closers, func(context.Context) error { return client.Close() })
		return redisstore.NewSessionStore(client, cfg.Session.CookieName, cfg.Session.TTL), redisstore.NewUpdateDedup(client), nil
	}

	if cfg.Session.Backend == config.SessionCookie {
		return session.NewCookieStore(cfg.Session.Secret, cfg.Session.CookieName, cfg.Session.TTL), nil, nil
	}
	return memory.NewSessionStore(cfg.Session.CookieName, cfg.Session.TTL), nil, nil
}
