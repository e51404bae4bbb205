package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
)

// Principal is the authenticated admin.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type Verifier interface {
	Verify(ctx context.Context, username, password string) (Principal, error)
}

// AdminLookup finds an active, non archived admin worker by email. It
// returns nil, nil when there is none.
type AdminLookup interface {
	FindAdminByEmail(ctx context.Context, email string) (*models.Worker, error)
}

// AdminVerifier accepts the configured admin account and admin workers
// with a password set.
type AdminVerifier struct {
	username string
	hash     string
	workers  AdminLookup
}

func NewAdminVerifier(username, passwordHash string, workers AdminLookup) *AdminVerifier {
	return &AdminVerifier{
		username: username,
		hash:     passwordHash,
		workers:  workers,
	}
}

var errInvalidCredentials = httperr.ErrUnauthorized("invalid_credentials")

func (v *AdminVerifier) Verify(ctx context.Context, username, password string) (Principal, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Principal{}, errInvalidCredentials
	}

	if v.username != "" && subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1 {
		if CheckPassword(v.hash, password) {
			return Principal{ID: "admin", Username: v.username, Name: "Administrator"}, nil
		}
		return Principal{}, errInvalidCredentials
	}

	if v.workers == nil || !strings.Contains(username, "@") {
		return Principal{}, errInvalidCredentials
	}

	w, err := v.workers.FindAdminByEmail(ctx, strings.ToLower(username))
	if err != nil {
		return Principal{}, err
	}
	if w == nil || !w.IsAdmin() || !CheckPassword(w.PasswordHash, password) {
		return Principal{}, errInvalidCredentials
	}

	return Principal{ID: w.ID, Username: w.Email, Name: w.Name}, nil
}
