package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListLogs(w http.ResponseWriter, r *http.Request)
	Offices(w http.ResponseWriter, r *http.Request)
	NearestOffice(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.capture(w, r, attendance.KindCheckIn, "Check in successful")
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.capture(w, r, attendance.KindCheckOut, "Check out successful")
}

func (h *attendanceHandlerImpl) capture(w http.ResponseWriter, r *http.Request, kind attendance.Kind, message string) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Parse multipart form (max 10MB in memory, the rest spills to disk)
	if err := r.ParseMultipartForm(attendance.MaxPhotoSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req, err := captureRequestFromForm(r, kind)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Capture(r.Context(), sess, req)
	if err != nil {
		slog.Error("Capture service error", "kind", kind, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, message, result)
}

// captureRequestFromForm reads the capture fields. A missing photo is left
// for validation so it is reported together with the other field errors.
func captureRequestFromForm(r *http.Request, kind attendance.Kind) (attendance.CaptureRequest, error) {
	req := attendance.CaptureRequest{
		Kind:          kind,
		LocationError: strings.TrimSpace(r.FormValue("location_error")),
		CameraError:   strings.TrimSpace(r.FormValue("camera_error")),
	}
	var errs validator.ValidationErrors

	req.Latitude = formFloat(r, "latitude", &errs)
	req.Longitude = formFloat(r, "longitude", &errs)
	req.Accuracy = formFloat(r, "accuracy", &errs)

	if v := strings.TrimSpace(r.FormValue("captured_at")); v != "" {
		t, ok := validator.IsValidDateTime(v)
		if !ok {
			errs.Add("captured_at", "captured_at must be an ISO8601 timestamp")
		} else {
			req.CapturedAt = &t
		}
	}

	file, fileHeader, err := r.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		slog.Error("Failed to get file from form", "error", err)
		errs.Add("photo", "invalid file upload")
	default:
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, attendance.MaxPhotoSize+1))
		if err != nil {
			return req, err
		}
		req.Photo = data
		req.PhotoName = fileHeader.Filename
	}

	// Camera and location failures take precedence over malformed fields.
	if err := req.AcquisitionError(); err != nil {
		return req, err
	}
	return req, errs.Err()
}

func formFloat(r *http.Request, field string, errs *validator.ValidationErrors) *float64 {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		errs.Add(field, field+" must be a number")
		return nil
	}
	return &f
}

// ListLogs implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	filter := attendance.LogFilter{
		From:       q.Get("from"),
		To:         q.Get("to"),
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
	}

	logs, err := h.attendanceService.ListLogs(r.Context(), sess, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, logs)
}

// Offices implements AttendanceHandler.
func (h *attendanceHandlerImpl) Offices(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.attendanceService.Offices())
}

// NearestOffice implements AttendanceHandler.
func (h *attendanceHandlerImpl) NearestOffice(w http.ResponseWriter, r *http.Request) {
	var req attendance.NearestOfficeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("NearestOffice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.NearestOffice(req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
