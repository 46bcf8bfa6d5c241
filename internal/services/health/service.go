package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB      Pinger
	Timeout time.Duration
}

// NewService constructs a new health service. A nil db means summaries are
// kept in memory.
func NewService(db Pinger) *Service {
	return &Service{DB: db, Timeout: 2 * time.Second}
}

// Status returns the health payload. The service itself is always reported
// ok; the storage entry says whether Postgres answered.
func (s *Service) Status(ctx context.Context) map[string]any {
	out := map[string]any{"ok": true}
	if s == nil || s.DB == nil {
		out["storage"] = "memory"
		return out
	}
	out["storage"] = "postgres"
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	if err := s.DB.PingContext(ctx); err != nil {
		out["database"] = "down"
		return out
	}
	out["database"] = "up"
	return out
}
