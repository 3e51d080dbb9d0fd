package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/resource"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/shift"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusMapping(t *testing.T) {
	var verrs validator.ValidationErrors
	verrs.Add("end_time", "end_time must be after start_time")

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", verrs, http.StatusUnprocessableEntity},
		{"wrapped not found", fmt.Errorf("%w: %w", shift.ErrShiftNotFound, &apiclient.APIError{StatusCode: 404}), http.StatusNotFound},
		{"access denied", access.ErrAccessDenied, http.StatusForbidden},
		{"no session", session.ErrNoSession, http.StatusUnauthorized},
		{"upstream 401", &apiclient.APIError{StatusCode: 401, Message: "jwt expired"}, http.StatusUnauthorized},
		{"upstream 403", &apiclient.APIError{StatusCode: 403, Message: "nope"}, http.StatusForbidden},
		{"upstream 422", &apiclient.APIError{StatusCode: 422, Message: "duplicate code"}, http.StatusUnprocessableEntity},
		{"upstream 500", &apiclient.APIError{StatusCode: 500, Message: "boom"}, http.StatusBadGateway},
		{"unavailable", fmt.Errorf("%w: dial tcp", apiclient.ErrUnavailable), http.StatusBadGateway},
		{"shape", &payload.ShapeError{Entity: "asset", Field: "x", Reason: "unknown field"}, http.StatusBadGateway},
		{"location denied", attendance.ErrLocationPermissionDenied, http.StatusUnprocessableEntity},
		{"outside office", attendance.ErrOutsideOffice, http.StatusForbidden},
		{"already processed", leave.ErrAlreadyProcessed, http.StatusConflict},
		{"invalid id", resource.ErrInvalidID, http.StatusBadRequest},
		{"unknown", errors.New("kaboom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, c.err)
			assert.Equal(t, c.code, rec.Code)

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	var verrs validator.ValidationErrors
	verrs.Add("end_time", "end_time must be after start_time")

	rec := httptest.NewRecorder()
	HandleError(rec, verrs)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "end_time must be after start_time", body.Error.Details["end_time"])
}
