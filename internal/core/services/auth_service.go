package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JuanPescoran/bond-valuation-app/internal/apperrors"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	portsrepo "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/repositories"
	portssvc "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/services"
	"github.com/JuanPescoran/bond-valuation-app/internal/utils"
)

// authService signs users in against the backend and mirrors their sessions in the KV store.
type authService struct {
	BaseService
	backend portsrepo.AuthGateway
	store   portsrepo.KVStoreFacade
	ttl     time.Duration
	now     func() time.Time
}

// AuthServiceOption is a functional option for configuring the auth service
type AuthServiceOption func(*authService)

// WithAuthClock replaces the wall clock used for session expiry.
func WithAuthClock(now func() time.Time) AuthServiceOption {
	return func(s *authService) {
		s.now = now
	}
}

// NewAuthService creates an auth service whose sessions live at most ttl.
func NewAuthService(backend portsrepo.AuthGateway, store portsrepo.KVStoreFacade, ttl time.Duration, options ...AuthServiceOption) portssvc.AuthSvcFacade {
	svc := &authService{
		backend: backend,
		store:   store,
		ttl:     ttl,
		now:     time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func credentialErrors(username, password string) error {
	fields := map[string]string{}
	if username == "" {
		fields["username"] = "is required"
	}
	if password == "" {
		fields["password"] = "is required"
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

func (s *authService) SignIn(ctx context.Context, username, password string) (*domain.Session, error) {
	username = strings.TrimSpace(username)
	if err := credentialErrors(username, password); err != nil {
		return nil, err
	}

	session, err := s.backend.SignIn(ctx, username, password)
	if err != nil {
		s.LogError(ctx, err, "Backend sign-in failed", slog.String("username", username))
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	now := s.now()
	session.ExpiresAt = now.Add(s.ttl)
	if exp, ok := utils.TokenExpiry(session.Token); ok && exp.Before(session.ExpiresAt) {
		session.ExpiresAt = exp
	}
	if session.Expired(now) {
		s.LogInfo(ctx, "Backend issued an already expired token", slog.Int64("user_id", session.ID))
		return nil, apperrors.ErrAuthenticationRequired
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.store.Put(ctx, portsrepo.NamespaceSessions, utils.SessionKey(session.Token), data, session.ExpiresAt.Sub(now)); err != nil {
		s.LogError(ctx, err, "Failed to persist session", slog.Int64("user_id", session.ID))
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.LogInfo(ctx, "User signed in", slog.Int64("user_id", session.ID), slog.Time("expires_at", session.ExpiresAt))
	return session, nil
}

func (s *authService) SignUp(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if err := credentialErrors(username, password); err != nil {
		return nil, err
	}

	user, err := s.backend.SignUp(ctx, username, password, []string{domain.RoleUser})
	if err != nil {
		s.LogError(ctx, err, "Backend sign-up failed", slog.String("username", username))
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}

	s.LogInfo(ctx, "User signed up", slog.Int64("user_id", user.ID))
	return user, nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, portsrepo.NamespaceSessions, utils.SessionKey(token)); err != nil {
		s.LogError(ctx, err, "Failed to delete session")
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}

func (s *authService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, apperrors.ErrAuthenticationRequired
	}

	data, err := s.store.Get(ctx, portsrepo.NamespaceSessions, utils.SessionKey(token))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrAuthenticationRequired
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		// An unreadable entry is dropped so the user can sign in again.
		s.LogError(ctx, err, "Discarding corrupt session entry")
		_ = s.store.Delete(ctx, portsrepo.NamespaceSessions, utils.SessionKey(token))
		return nil, apperrors.ErrAuthenticationRequired
	}
	if session.Token != token || session.Expired(s.now()) {
		return nil, apperrors.ErrAuthenticationRequired
	}
	return &session, nil
}

func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	removed, err := s.store.PurgeExpired(ctx, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to purge expired sessions")
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	if removed > 0 {
		s.LogInfo(ctx, "Purged expired sessions", slog.Int64("removed", removed))
	}
	return removed, nil
}
