package attendance

import (
	"math"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/pkg/geo"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"
)

// MaxPhotoSize bounds the captured proof photo.
const MaxPhotoSize = 10 << 20

// Browser-reported acquisition failures.
const (
	LocationPermissionDenied    = "permission_denied"
	LocationPositionUnavailable = "position_unavailable"
	LocationTimeout             = "timeout"

	CameraPermissionDenied = "permission_denied"
	CameraNotFound         = "not_found"
)

// CaptureRequest is one check-in or check-out as submitted by the browser.
type CaptureRequest struct {
	Kind          Kind
	Latitude      *float64
	Longitude     *float64
	Accuracy      *float64
	CapturedAt    *time.Time
	LocationError string
	CameraError   string
	Photo         []byte
	PhotoName     string
	// PhotoType is set by Validate from the sniffed content.
	PhotoType string
}

// AcquisitionError maps a browser-reported camera or location failure to
// its own error. It returns nil when the capture succeeded.
func (r *CaptureRequest) AcquisitionError() error {
	switch r.CameraError {
	case "":
	case CameraPermissionDenied:
		return ErrCameraPermissionDenied
	default:
		return ErrCameraUnavailable
	}
	switch r.LocationError {
	case "":
		return nil
	case LocationPermissionDenied:
		return ErrLocationPermissionDenied
	case LocationTimeout:
		return ErrLocationTimeout
	default:
		return ErrLocationUnavailable
	}
}

func (r *CaptureRequest) Validate() error {
	if !r.Kind.Valid() {
		return ErrInvalidKind
	}
	if err := r.AcquisitionError(); err != nil {
		return err
	}

	var errs validator.ValidationErrors

	switch {
	case r.Latitude == nil:
		errs.Add("latitude", "latitude is required")
	case !geo.ValidLatitude(*r.Latitude):
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	switch {
	case r.Longitude == nil:
		errs.Add("longitude", "longitude is required")
	case !geo.ValidLongitude(*r.Longitude):
		errs.Add("longitude", "longitude must be between -180 and 180")
	}
	if r.Accuracy != nil && (math.IsNaN(*r.Accuracy) || math.IsInf(*r.Accuracy, 0) || *r.Accuracy < 0) {
		errs.Add("accuracy", "accuracy must be a non-negative number")
	}

	// Photo
	switch {
	case len(r.Photo) == 0:
		errs.Add("photo", "attendance proof photo is required")
	case len(r.Photo) > MaxPhotoSize:
		errs.Add("photo", "attendance proof photo size must not exceed 10MB")
	default:
		switch ct := http.DetectContentType(r.Photo); ct {
		case "image/jpeg", "image/png":
			r.PhotoType = ct
		default:
			errs.Add("photo", "invalid file type: only jpeg and png images are allowed")
		}
	}

	return errs.Err()
}

// SubmitRequest is what the HRMS API receives for a capture.
type SubmitRequest struct {
	Kind       Kind
	Latitude   float64
	Longitude  float64
	Accuracy   *float64
	CapturedAt time.Time
	Office     *geo.Match
	Address    string
	ProofKey   string
	Photo      []byte
	PhotoName  string
	PhotoType  string
}

type LogFilter struct {
	From       string `json:"from" validate:"omitempty,date"`
	To         string `json:"to" validate:"omitempty,date"`
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status" validate:"omitempty,oneof=present absent late half_day on_leave"`
}

func (f *LogFilter) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(f); err != nil {
		if !validator.As(err, &errs) {
			return err
		}
	}
	from, okFrom := validator.IsValidDate(f.From)
	to, okTo := validator.IsValidDate(f.To)
	if okFrom && okTo && to.Before(from) {
		errs.Add("to", "to must not be before from")
	}
	return errs.Err()
}

type NearestOfficeRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *NearestOfficeRequest) Validate() error {
	var errs validator.ValidationErrors
	if !geo.ValidCoordinate(r.Latitude, r.Longitude) {
		errs.Add("coordinates", "latitude must be between -90 and 90 and longitude between -180 and 180")
	}
	return errs.Err()
}

type NearestOfficeResponse struct {
	Office   *geo.Match `json:"office"`
	RadiusKm float64    `json:"radiusKm"`
}
