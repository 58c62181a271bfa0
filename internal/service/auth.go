package service

import (
	"context"

	"shop-server/internal/models"
)

// AuthService handles registration, login, and the bearer-token lifecycle.
// Tokens are self-contained signed claims: there is no server-side state and
// therefore no revocation before natural expiry.
type AuthService interface {
	// Register creates a new account and returns a fresh token for it.
	// Fails with models.ErrUserAlreadyExists when the username is taken.
	Register(ctx context.Context, username, password, name string) (string, error)
	// Login verifies credentials and returns a fresh token.
	// Fails with models.ErrInvalidCredentials on unknown user or bad password.
	Login(ctx context.Context, username, password string) (string, error)
	// IssueToken signs a claim for the subject, valid for the configured TTL.
	IssueToken(username string) (string, error)
	// VerifyToken validates signature and expiry and returns the claims.
	VerifyToken(tokenString string) (*models.Claims, error)
}
