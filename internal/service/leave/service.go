package leave

import (
	"context"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
}

func NewLeaveService(leaveRepository leave.LeaveRepository) leave.LeaveService {
	return &LeaveServiceImpl{LeaveRepository: leaveRepository}
}

// ListTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListTypes(ctx context.Context, sess *session.Session) ([]leave.LeaveType, error) {
	return s.LeaveRepository.ListTypes(ctx, sess.AccessToken)
}

// MyBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) MyBalances(ctx context.Context, sess *session.Session) ([]leave.LeaveBalance, error) {
	return s.LeaveRepository.ListBalances(ctx, sess.AccessToken)
}

// MyApplications implements leave.LeaveService.
func (s *LeaveServiceImpl) MyApplications(ctx context.Context, sess *session.Session, filter leave.ApplicationFilter) ([]leave.LeaveApplication, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.LeaveRepository.ListApplications(ctx, sess.AccessToken, filter)
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, sess *session.Session, req leave.ApplyLeaveRequest) (leave.LeaveApplication, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveApplication{}, err
	}
	return s.LeaveRepository.Apply(ctx, sess.AccessToken, req)
}

// PendingApprovals implements leave.LeaveService.
func (s *LeaveServiceImpl) PendingApprovals(ctx context.Context, sess *session.Session) ([]leave.LeaveApplication, error) {
	apps, err := s.LeaveRepository.ListApprovals(ctx, sess.AccessToken)
	if err != nil {
		return nil, err
	}
	pending := make([]leave.LeaveApplication, 0, len(apps))
	for _, app := range apps {
		if app.Status == leave.StatusPending {
			pending = append(pending, app)
		}
	}
	return pending, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, sess *session.Session, req leave.ReviewRequest) (leave.LeaveApplication, error) {
	if err := req.Validate(false); err != nil {
		return leave.LeaveApplication{}, err
	}
	return s.LeaveRepository.Approve(ctx, sess.AccessToken, req)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, sess *session.Session, req leave.ReviewRequest) (leave.LeaveApplication, error) {
	if err := req.Validate(true); err != nil {
		return leave.LeaveApplication{}, err
	}
	return s.LeaveRepository.Reject(ctx, sess.AccessToken, req)
}
