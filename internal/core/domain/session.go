package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// SessionAdminKey is the session key holding the serialized admin identity.
const SessionAdminKey = "admin"

var ErrMalformedSession = errors.New("malformed session")

// SessionData is the decoded payload of a session. A nil or empty map means no session.
type SessionData map[string]any

// NewAdminSession builds the payload stored on successful login.
func NewAdminSession(id Identity) SessionData {
	return SessionData{
		SessionAdminKey: map[string]any{
			"id":    id.ID,
			"email": id.Email,
		},
	}
}

// IdentityFromSession rebuilds the identity stored in s. It returns (nil, nil) for an
// empty session and ErrMalformedSession when the admin entry is missing or has the wrong shape.
// The payload is trusted as-is; the admin store is not consulted.
func IdentityFromSession(s SessionData) (*Identity, error) {
	if len(s) == 0 {
		return nil, nil
	}

	raw, ok := s[SessionAdminKey].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q object", ErrMalformedSession, SessionAdminKey)
	}

	id, ok := toInt(raw["id"])
	if !ok {
		return nil, fmt.Errorf("%w: invalid admin id", ErrMalformedSession)
	}
	email, ok := raw["email"].(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("%w: invalid admin email", ErrMalformedSession)
	}

	return &Identity{ID: id, Email: email}, nil
}

// toInt accepts the numeric shapes a payload takes after in-memory storage or a JSON round-trip.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
