package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
)

type leaveRepository struct {
	client *apiclient.Client
}

func NewLeaveRepository(client *apiclient.Client) leave.LeaveRepository {
	return &leaveRepository{client: client}
}

func (r *leaveRepository) ListTypes(ctx context.Context, token string) ([]leave.LeaveType, error) {
	body, err := r.client.Get(ctx, token, "/leave/types", nil)
	if err != nil {
		return nil, err
	}
	return payload.MapList("leave_type", unwrapList(body, "leave_types", "types"), leave.MapLeaveType)
}

func (r *leaveRepository) ListBalances(ctx context.Context, token string) ([]leave.LeaveBalance, error) {
	body, err := r.client.Get(ctx, token, "/leave/balance", nil)
	if err != nil {
		return nil, err
	}
	return payload.MapList("leave_balance", unwrapList(body, "balances", "leave_balances"), leave.MapLeaveBalance)
}

func (r *leaveRepository) ListApplications(ctx context.Context, token string, filter leave.ApplicationFilter) ([]leave.LeaveApplication, error) {
	q := url.Values{}
	setIf(q, "status", filter.Status)
	setIf(q, "leave_type", filter.LeaveType)
	setIf(q, "from", filter.From)
	setIf(q, "to", filter.To)

	body, err := r.client.Get(ctx, token, "/leave/applications", q)
	if err != nil {
		return nil, err
	}
	return payload.MapList("leave_application", unwrapList(body, "applications", "leave_applications"), leave.MapLeaveApplication)
}

func (r *leaveRepository) Apply(ctx context.Context, token string, req leave.ApplyLeaveRequest) (leave.LeaveApplication, error) {
	body, err := r.client.Post(ctx, token, "/leave/applications", req)
	if err != nil {
		return leave.LeaveApplication{}, err
	}
	if body == nil {
		return leave.LeaveApplication{}, emptyResponse("leave_application")
	}
	return leave.MapLeaveApplication(unwrapOne(body, "application", "leave_application"))
}

func (r *leaveRepository) ListApprovals(ctx context.Context, token string) ([]leave.LeaveApplication, error) {
	body, err := r.client.Get(ctx, token, "/leave/approvals", nil)
	if err != nil {
		return nil, err
	}
	return payload.MapList("leave_application", unwrapList(body, "approvals", "applications"), leave.MapLeaveApplication)
}

func (r *leaveRepository) Approve(ctx context.Context, token string, req leave.ReviewRequest) (leave.LeaveApplication, error) {
	return r.review(ctx, token, req, "approve")
}

func (r *leaveRepository) Reject(ctx context.Context, token string, req leave.ReviewRequest) (leave.LeaveApplication, error) {
	return r.review(ctx, token, req, "reject")
}

func (r *leaveRepository) review(ctx context.Context, token string, req leave.ReviewRequest, action string) (leave.LeaveApplication, error) {
	seg, err := segment(req.ID)
	if err != nil {
		return leave.LeaveApplication{}, err
	}
	body, err := r.client.Post(ctx, token, "/leave/applications/"+seg+"/"+action, req)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			return leave.LeaveApplication{}, fmt.Errorf("%w: %w", leave.ErrAlreadyProcessed, err)
		}
		return leave.LeaveApplication{}, notFound(err, leave.ErrLeaveApplicationNotFound)
	}
	if body == nil {
		return leave.LeaveApplication{}, emptyResponse("leave_application")
	}
	return leave.MapLeaveApplication(unwrapOne(body, "application", "leave_application"))
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
