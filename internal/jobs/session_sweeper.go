package jobs

import (
	"context"
	"log/slog"

	portssvc "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/services"
)

// SessionSweeper removes expired sessions from the session store.
type SessionSweeper struct {
	sessions portssvc.SessionLifecycleSvc
	logger   *slog.Logger
}

func NewSessionSweeper(sessions portssvc.SessionLifecycleSvc, logger *slog.Logger) *SessionSweeper {
	return &SessionSweeper{sessions: sessions, logger: logger}
}

func (j *SessionSweeper) Name() string { return "session_sweeper" }

func (j *SessionSweeper) Run(ctx context.Context) error {
	removed, err := j.sessions.PurgeExpiredSessions(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		j.logger.Info("Expired sessions purged", slog.Int64("removed", removed))
	}
	return nil
}
