package domain

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Admin is the persisted administrator record.
type Admin struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Identity is the request-scoped projection of an Admin. It never carries the hash.
type Identity struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// Identity returns the session-safe projection of a.
func (a *Admin) Identity() Identity {
	return Identity{ID: a.ID, Email: a.Email}
}

// IsPasswordValid reports whether password matches the stored hash.
// Hashes starting with "$2" are bcrypt; anything else is a hex-encoded sha256 digest.
func (a *Admin) IsPasswordValid(password string) bool {
	if a.PasswordHash == "" {
		return false
	}
	if strings.HasPrefix(a.PasswordHash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
	}
	digest := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(a.PasswordHash), []byte(digest)) == 1
}

// HashPassword returns the hex sha256 digest used for seeded admins.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
