package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"outreach-backend/internal/shared/server/respond"
)

// Pinger is a dependency whose reachability is reported alongside the status.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	checks map[string]Pinger
	now    func() time.Time
}

// NewService constructs a new health service. Nil checks are skipped.
func NewService(checks map[string]Pinger) *Service {
	live := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			live[name] = p
		}
	}
	return &Service{checks: live, now: time.Now}
}

// Status returns the health payload. The service reports healthy even when an
// optional dependency is down; the failing check is listed under "checks".
func (s *Service) Status(ctx context.Context) gin.H {
	out := gin.H{
		"status":    "healthy",
		"timestamp": s.now().UTC().Format(time.RFC3339Nano),
	}
	if len(s.checks) == 0 {
		return out
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	checks := gin.H{}
	for name, p := range s.checks {
		if err := p.PingContext(ctx); err != nil {
			checks[name] = "unavailable"
			continue
		}
		checks[name] = "ok"
	}
	out["checks"] = checks
	return out
}

// Handler serves Status.
func (s *Service) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, s.Status(c.Request.Context()))
	}
}
