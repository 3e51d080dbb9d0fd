package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/handler/http/response"
)

type AccessHandler interface {
	Access(w http.ResponseWriter, r *http.Request)
	Navigation(w http.ResponseWriter, r *http.Request)
	SelectTab(w http.ResponseWriter, r *http.Request)
	ListRoles(w http.ResponseWriter, r *http.Request)
}

type accessHandlerImpl struct {
	accessService access.AccessService
}

func NewAccessHandler(accessService access.AccessService) AccessHandler {
	return &accessHandlerImpl{accessService: accessService}
}

// Access handles GET /me/access
func (h *accessHandlerImpl) Access(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.accessService.Describe(r.Context(), sess))
}

// Navigation handles GET /me/navigation
func (h *accessHandlerImpl) Navigation(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.accessService.Describe(r.Context(), sess).Navigation)
}

// SelectTab handles GET /me/select-tab?route=
func (h *accessHandlerImpl) SelectTab(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	route := r.URL.Query().Get("route")
	if route == "" {
		response.BadRequest(w, "Query parameter 'route' is required", nil)
		return
	}

	selection, err := h.accessService.SelectTab(r.Context(), sess, route)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, selection)
}

// ListRoles handles GET /roles
func (h *accessHandlerImpl) ListRoles(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	table, err := h.accessService.Roles(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, table)
}
