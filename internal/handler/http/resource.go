package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/resource"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// ResourceHandler serves list/get/create/update/delete for one upstream
// entity. Name is used in response messages, e.g. "Shift".
type ResourceHandler[T any, W resource.Validatable] struct {
	name    string
	service resource.Service[T, W]
}

func NewResourceHandler[T any, W resource.Validatable](name string, service resource.Service[T, W]) *ResourceHandler[T, W] {
	return &ResourceHandler[T, W]{name: name, service: service}
}

func (h *ResourceHandler[T, W]) List(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items, err := h.service.List(r.Context(), sess, r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

func (h *ResourceHandler[T, W]) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	item, err := h.service.Get(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, item)
}

func (h *ResourceHandler[T, W]) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var in W
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		slog.Error(h.name+" create decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	item, err := h.service.Create(r.Context(), sess, in)
	if err != nil {
		slog.Error(h.name+" create service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, h.name+" created successfully", item)
}

func (h *ResourceHandler[T, W]) Update(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var in W
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		slog.Error(h.name+" update decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	item, err := h.service.Update(r.Context(), sess, chi.URLParam(r, "id"), in)
	if err != nil {
		slog.Error(h.name+" update service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, h.name+" updated successfully", item)
}

func (h *ResourceHandler[T, W]) Delete(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), sess, chi.URLParam(r, "id")); err != nil {
		slog.Error(h.name+" delete service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, h.name+" deleted successfully", nil)
}

// ResourceRoutes is implemented by every ResourceHandler instantiation.
type ResourceRoutes interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}
