package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/99minutos/quiz-admin/internal/infrastructure/config"
	"github.com/99minutos/quiz-admin/internal/infrastructure/db/memory"
	"github.com/99minutos/quiz-admin/internal/infrastructure/http/handlers"
	"github.com/99minutos/quiz-admin/internal/infrastructure/session"
)

func TestRun_ReturnsConfigError(t *testing.T) {
	t.Setenv("STORAGE", "floppy")

	err := run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "STORAGE")
}

func TestOpenSessions_WithoutRedis(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		check   func(t *testing.T, store any)
	}{
		{
			name:    "memory",
			backend: config.SessionMemory,
			check: func(t *testing.T, store any) {
				require.IsType(t, &memory.SessionStore{}, store)
			},
		},
		{
			name:    "cookie",
			backend: config.SessionCookie,
			check: func(t *testing.T, store any) {
				require.IsType(t, &session.CookieStore{}, store)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Session: config.SessionConfig{
				Backend:    tt.backend,
				Secret:     "s3cret",
				TTL:        time.Hour,
				CookieName: "quiz_session",
			}}
			st := &stores{checks: map[string]handlers.CheckFunc{}}

			sessions, dedup, err := openSessions(context.Background(), cfg, st)
			require.NoError(t, err)
			require.Nil(t, dedup)
			require.Empty(t, st.checks)
			tt.check(t, sessions)
		})
	}
}
