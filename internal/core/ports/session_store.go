package ports

import (
	"net/http"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

// SessionStore keeps per-client session state keyed by a cookie.
//
// Integrity of the stored payload (signing, server-side storage) is the store's job; callers
// trust whatever Load returns.
type SessionStore interface {
	// Load returns the current session payload, or nil when the request carries no session.
	Load(r *http.Request) (domain.SessionData, error)
	// Start replaces any previous session of the client with a new one holding data.
	Start(w http.ResponseWriter, r *http.Request, data domain.SessionData) error
	// Clear drops the client's session.
	Clear(w http.ResponseWriter, r *http.Request) error
}
