package services

import (
	"context"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
)

// AuthSvc defines sign-in, sign-up and session resolution.
type AuthSvc interface {
	// SignIn authenticates against the backend and persists the resulting session.
	SignIn(ctx context.Context, username, password string) (*domain.Session, error)

	// SignUp registers a new account with the default role.
	SignUp(ctx context.Context, username, password string) (*domain.User, error)

	// SignOut forgets the session bound to token. Unknown tokens are ignored.
	SignOut(ctx context.Context, token string) error

	// Resolve returns the live session for token or apperrors.ErrAuthenticationRequired.
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}

// SessionLifecycleSvc defines housekeeping of persisted sessions.
type SessionLifecycleSvc interface {
	// PurgeExpiredSessions drops sessions past their expiry and returns how many were removed.
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// AuthSvcFacade combines all auth-related service interfaces.
type AuthSvcFacade interface {
	AuthSvc
	SessionLifecycleSvc
}
