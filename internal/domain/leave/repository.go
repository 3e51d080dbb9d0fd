package leave

import "context"

// LeaveRepository is the upstream leave API.
type LeaveRepository interface {
	ListTypes(ctx context.Context, token string) ([]LeaveType, error)
	ListBalances(ctx context.Context, token string) ([]LeaveBalance, error)
	ListApplications(ctx context.Context, token string, filter ApplicationFilter) ([]LeaveApplication, error)
	Apply(ctx context.Context, token string, req ApplyLeaveRequest) (LeaveApplication, error)
	ListApprovals(ctx context.Context, token string) ([]LeaveApplication, error)
	Approve(ctx context.Context, token string, req ReviewRequest) (LeaveApplication, error)
	Reject(ctx context.Context, token string, req ReviewRequest) (LeaveApplication, error)
}
