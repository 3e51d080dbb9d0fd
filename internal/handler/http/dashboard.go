package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/handler/http/response"
)

type DashboardHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// Get handles GET /dashboard
func (h *dashboardHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.Get(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
