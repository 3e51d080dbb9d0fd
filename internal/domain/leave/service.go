package leave

import (
	"context"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
)

type LeaveService interface {
	ListTypes(ctx context.Context, sess *session.Session) ([]LeaveType, error)
	MyBalances(ctx context.Context, sess *session.Session) ([]LeaveBalance, error)
	MyApplications(ctx context.Context, sess *session.Session, filter ApplicationFilter) ([]LeaveApplication, error)
	Apply(ctx context.Context, sess *session.Session, req ApplyLeaveRequest) (LeaveApplication, error)
	PendingApprovals(ctx context.Context, sess *session.Session) ([]LeaveApplication, error)
	Approve(ctx context.Context, sess *session.Session, req ReviewRequest) (LeaveApplication, error)
	Reject(ctx context.Context, sess *session.Session, req ReviewRequest) (LeaveApplication, error)
}
