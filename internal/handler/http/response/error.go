package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/asset"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/fiscalyear"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/report"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/resource"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/shift"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"
)

var notFoundErrors = []error{
	employee.ErrEmployeeNotFound,
	asset.ErrAssetNotFound,
	holiday.ErrHolidayNotFound,
	fiscalyear.ErrFiscalYearNotFound,
	shift.ErrShiftNotFound,
	leave.ErrLeaveApplicationNotFound,
	payroll.ErrPayslipNotFound,
	payroll.ErrSalaryStructureNotFound,
	report.ErrReportNotFound,
	access.ErrRoleNotFound,
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			NotFound(w, target.Error())
			return
		}
	}

	switch {
	// Session and auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrSessionExpired),
		errors.Is(err, session.ErrNoSession):
		Unauthorized(w, "Session expired, please log in again")
	case errors.Is(err, auth.ErrUpstreamRejected), errors.Is(err, apiclient.ErrUnauthorized):
		Unauthorized(w, "Session expired, please log in again")

	// Access errors
	case errors.Is(err, access.ErrAccessDenied):
		Forbidden(w, err.Error())
	case errors.Is(err, access.ErrRoleNotAssigned):
		Forbidden(w, err.Error())
	case errors.Is(err, access.ErrInvalidAction):
		BadRequest(w, err.Error(), nil)

	// Attendance capture errors
	case errors.Is(err, attendance.ErrInvalidKind):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrLocationPermissionDenied):
		UnprocessableEntity(w, "LOCATION_PERMISSION_DENIED", err.Error())
	case errors.Is(err, attendance.ErrLocationUnavailable):
		UnprocessableEntity(w, "LOCATION_UNAVAILABLE", err.Error())
	case errors.Is(err, attendance.ErrLocationTimeout):
		UnprocessableEntity(w, "LOCATION_TIMEOUT", err.Error())
	case errors.Is(err, attendance.ErrCameraPermissionDenied):
		UnprocessableEntity(w, "CAMERA_PERMISSION_DENIED", err.Error())
	case errors.Is(err, attendance.ErrCameraUnavailable):
		UnprocessableEntity(w, "CAMERA_UNAVAILABLE", err.Error())
	case errors.Is(err, attendance.ErrOutsideOffice):
		Forbidden(w, err.Error())

	// Leave errors
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, err.Error())

	case errors.Is(err, resource.ErrInvalidID):
		BadRequest(w, err.Error(), nil)

	// Upstream errors
	case errors.Is(err, payload.ErrUnexpectedShape):
		slog.Error("unexpected upstream payload", "error", err)
		BadGateway(w, "UNEXPECTED_UPSTREAM_RESPONSE", "The HRMS API returned an unexpected response")
	case errors.Is(err, apiclient.ErrUnavailable):
		slog.Error("upstream unavailable", "error", err)
		BadGateway(w, "UPSTREAM_UNAVAILABLE", "The HRMS API is unavailable")
	default:
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			handleAPIError(w, apiErr)
			return
		}
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

// handleAPIError forwards client-side upstream rejections and reports the rest as 502.
func handleAPIError(w http.ResponseWriter, apiErr *apiclient.APIError) {
	switch apiErr.StatusCode {
	case http.StatusForbidden:
		Forbidden(w, apiErr.Message)
	case http.StatusNotFound:
		NotFound(w, apiErr.Message)
	case http.StatusConflict:
		Conflict(w, apiErr.Message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		UnprocessableEntity(w, "UPSTREAM_REJECTED", apiErr.Message)
	default:
		slog.Error("upstream error", "status", apiErr.StatusCode, "method", apiErr.Method, "path", apiErr.Path, "message", apiErr.Message)
		BadGateway(w, "UPSTREAM_ERROR", apiErr.Message)
	}
}
