package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)
	MyBalances(w http.ResponseWriter, r *http.Request)
	MyApplications(w http.ResponseWriter, r *http.Request)
	Apply(w http.ResponseWriter, r *http.Request)
	PendingApprovals(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	types, err := l.leaveService.ListTypes(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, types)
}

// MyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) MyBalances(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	balances, err := l.leaveService.MyBalances(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

// MyApplications implements LeaveHandler.
func (l *LeaveHandlerImpl) MyApplications(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	filter := leave.ApplicationFilter{
		Status:    q.Get("status"),
		LeaveType: q.Get("leave_type"),
		From:      q.Get("from"),
		To:        q.Get("to"),
	}

	apps, err := l.leaveService.MyApplications(r.Context(), sess, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, apps)
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	app, err := l.leaveService.Apply(r.Context(), sess, req)
	if err != nil {
		slog.Error("Apply service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave application submitted successfully", app)
}

// PendingApprovals implements LeaveHandler.
func (l *LeaveHandlerImpl) PendingApprovals(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	apps, err := l.leaveService.PendingApprovals(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, apps)
}

// Approve implements LeaveHandler.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	l.review(w, r, false)
}

// Reject implements LeaveHandler.
func (l *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	l.review(w, r, true)
}

func (l *LeaveHandlerImpl) review(w http.ResponseWriter, r *http.Request, reject bool) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// The body is optional when approving.
	var req leave.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Review decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	var app leave.LeaveApplication
	if reject {
		app, err = l.leaveService.Reject(r.Context(), sess, req)
	} else {
		app, err = l.leaveService.Approve(r.Context(), sess, req)
	}
	if err != nil {
		slog.Error("Review service error", "id", req.ID, "reject", reject, "error", err)
		response.HandleError(w, err)
		return
	}

	if reject {
		response.SuccessWithMessage(w, "Leave application rejected successfully", app)
		return
	}
	response.SuccessWithMessage(w, "Leave application approved successfully", app)
}
