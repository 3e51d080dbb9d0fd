package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/metrics"
)

// Gate builds module access middleware for one access service.
type Gate struct {
	access  access.AccessService
	metrics *metrics.Metrics
}

func NewGate(accessService access.AccessService, m *metrics.Metrics) *Gate {
	return &Gate{access: accessService, metrics: m}
}

// RequireModule rejects requests whose session may not perform action on module.
func (g *Gate) RequireModule(module string, action access.Action) func(http.Handler) http.Handler {
	return g.RequireModuleUnless(module, action, nil)
}

// RequireModuleUnless is RequireModule except that requests for which owns
// reports true pass without the module check.
func (g *Gate) RequireModuleUnless(module string, action access.Action, owns func(*http.Request, *session.Session) bool) func(http.Handler) http.Handler {
	if !action.Valid() {
		panic("middleware: invalid module action " + string(action))
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := session.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if owns != nil && owns(r, sess) {
				next.ServeHTTP(w, r)
				return
			}

			if !g.access.Evaluator(r.Context(), sess).CanPerformModuleAction(module, action) {
				slog.Info("module access denied", "session_id", sess.ID, "module", module, "action", action)
				if g.metrics != nil {
					g.metrics.AccessDenied.WithLabelValues(module, string(action)).Inc()
				}
				response.HandleError(w, access.ErrAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
