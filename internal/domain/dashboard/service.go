package dashboard

import (
	"context"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
)

type DashboardService interface {
	// Get loads the visible widgets concurrently. Any failing widget fails
	// the whole dashboard.
	Get(ctx context.Context, sess *session.Session) (*DashboardResponse, error)
}
