package attendance

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/geo"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/geocode"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/metrics"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/storage"
	"github.com/google/uuid"
)

// proofURLExpiry bounds presigned proof links handed back to the browser.
const proofURLExpiry = 15 * time.Minute

// Options configures office matching. Geocoder, Storage and Metrics are optional.
type Options struct {
	Offices       []geo.Office
	RadiusKm      float64
	RequireOffice bool
	Geocoder      geocode.Reverser
	Storage       storage.FileStorage
	Metrics       *metrics.Metrics
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	opts Options
	now  func() time.Time
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, opts Options) attendance.AttendanceService {
	if opts.Offices == nil {
		opts.Offices = geo.DefaultOffices
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		opts:                 opts,
		now:                  time.Now,
	}
}

// Capture implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Capture(ctx context.Context, sess *session.Session, req attendance.CaptureRequest) (attendance.CaptureResult, error) {
	if err := req.Validate(); err != nil {
		a.count(req.Kind, "invalid")
		return attendance.CaptureResult{}, err
	}

	lat, lon := *req.Latitude, *req.Longitude
	match := geo.FindClosestOffice(a.opts.Offices, lat, lon, a.opts.RadiusKm)
	if match == nil && a.opts.RequireOffice {
		a.count(req.Kind, "outside_office")
		return attendance.CaptureResult{}, attendance.ErrOutsideOffice
	}

	capturedAt := a.now().UTC()
	if req.CapturedAt != nil {
		capturedAt = req.CapturedAt.UTC()
	}

	result := attendance.CaptureResult{
		Kind:    req.Kind,
		Office:  match,
		Address: a.reverse(ctx, lat, lon),
	}
	result.ProofKey, result.ProofURL = a.archive(ctx, sess, req, capturedAt)

	record, err := a.AttendanceRepository.Submit(ctx, sess.AccessToken, attendance.SubmitRequest{
		Kind:       req.Kind,
		Latitude:   lat,
		Longitude:  lon,
		Accuracy:   req.Accuracy,
		CapturedAt: capturedAt,
		Office:     match,
		Address:    result.Address,
		ProofKey:   result.ProofKey,
		Photo:      req.Photo,
		PhotoName:  req.PhotoName,
		PhotoType:  req.PhotoType,
	})
	if err != nil {
		a.count(req.Kind, "failed")
		return attendance.CaptureResult{}, fmt.Errorf("failed to submit %s: %w", req.Kind, err)
	}

	a.count(req.Kind, "accepted")
	result.Record = record
	return result, nil
}

// reverse looks up an address for the fix. Lookup failures only cost the address.
func (a *AttendanceServiceImpl) reverse(ctx context.Context, lat, lon float64) string {
	if a.opts.Geocoder == nil {
		return ""
	}
	address, err := a.opts.Geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		slog.Warn("reverse geocoding failed", "latitude", lat, "longitude", lon, "error", err)
		return ""
	}
	return address
}

// archive stores the proof photo under attendance/<user>/YYYY/MM/. The capture
// goes ahead without a proof key when the archive is unavailable.
func (a *AttendanceServiceImpl) archive(ctx context.Context, sess *session.Session, req attendance.CaptureRequest, at time.Time) (string, string) {
	if a.opts.Storage == nil {
		return "", ""
	}

	ext := "jpg"
	if req.PhotoType == "image/png" {
		ext = "png"
	}
	key := fmt.Sprintf("%s%s/%s/%s-%s.%s", attendance.ProofKeyPrefix(sess.UserID), at.Format("2006"), at.Format("01"), req.Kind, uuid.NewString(), ext)

	stored, err := a.opts.Storage.Put(ctx, key, bytes.NewReader(req.Photo), int64(len(req.Photo)), req.PhotoType)
	if err != nil {
		slog.Error("failed to archive attendance proof", "key", key, "error", err)
		return "", ""
	}
	url, err := a.opts.Storage.URL(ctx, stored, proofURLExpiry)
	if err != nil {
		slog.Warn("failed to build proof URL", "key", stored, "error", err)
	}
	return stored, url
}

func (a *AttendanceServiceImpl) count(kind attendance.Kind, result string) {
	if a.opts.Metrics == nil {
		return
	}
	a.opts.Metrics.AttendanceCaptures.WithLabelValues(string(kind), result).Inc()
}

// ListLogs implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListLogs(ctx context.Context, sess *session.Session, filter attendance.LogFilter) ([]attendance.LogRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return a.AttendanceRepository.ListLogs(ctx, sess.AccessToken, filter)
}

// Offices implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Offices() []geo.Office {
	return a.opts.Offices
}

// NearestOffice implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) NearestOffice(req attendance.NearestOfficeRequest) (attendance.NearestOfficeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.NearestOfficeResponse{}, err
	}
	return attendance.NearestOfficeResponse{
		Office:   geo.FindClosestOffice(a.opts.Offices, req.Latitude, req.Longitude, a.opts.RadiusKm),
		RadiusKm: a.opts.RadiusKm,
	}, nil
}
