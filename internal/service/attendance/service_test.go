package attendance

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/geo"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/metrics"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/storage"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jpegBytes = append([]byte{0xff, 0xd8, 0xff, 0xe0}, []byte("fake-jpeg-body")...)

type fakeAttendanceRepository struct {
	submitted []attendance.SubmitRequest
	token     string
	err       error
}

func (f *fakeAttendanceRepository) Submit(ctx context.Context, token string, req attendance.SubmitRequest) (attendance.LogRecord, error) {
	if f.err != nil {
		return attendance.LogRecord{}, f.err
	}
	f.token = token
	f.submitted = append(f.submitted, req)
	return attendance.LogRecord{ID: "log-1", Status: attendance.StatusPresent}, nil
}

func (f *fakeAttendanceRepository) ListLogs(ctx context.Context, token string, filter attendance.LogFilter) ([]attendance.LogRecord, error) {
	return []attendance.LogRecord{{ID: "log-1"}}, nil
}

type fakeGeocoder struct {
	address string
	err     error
}

func (f fakeGeocoder) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	return f.address, f.err
}

func ptr(f float64) *float64 { return &f }

func testSession() *session.Session {
	return &session.Session{ID: "sess-1", UserID: "u-1", AccessToken: "upstream-token"}
}

func chennaiCapture() attendance.CaptureRequest {
	return attendance.CaptureRequest{
		Kind:      attendance.KindCheckIn,
		Latitude:  ptr(13.0827),
		Longitude: ptr(80.2707),
		Photo:     jpegBytes,
		PhotoName: "capture.jpg",
	}
}

func TestCapture_MatchesChennaiOffice(t *testing.T) {
	repo := &fakeAttendanceRepository{}
	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	m := metrics.New()
	svc := NewAttendanceService(repo, Options{
		RadiusKm: 5,
		Geocoder: fakeGeocoder{address: "Anna Salai, Chennai"},
		Storage:  store,
		Metrics:  m,
	})

	res, err := svc.Capture(context.Background(), testSession(), chennaiCapture())
	require.NoError(t, err)

	require.NotNil(t, res.Office)
	assert.Equal(t, "Chennai - Office Building A", res.Office.Office.Name)
	assert.InDelta(t, 0, res.Office.DistanceKm, 1e-9)
	assert.Equal(t, "Anna Salai, Chennai", res.Address)
	assert.True(t, strings.HasPrefix(res.ProofKey, "attendance/u-1/2"), res.ProofKey)
	assert.True(t, strings.HasSuffix(res.ProofKey, ".jpg"))
	assert.Equal(t, "log-1", res.Record.ID)

	require.Len(t, repo.submitted, 1)
	assert.Equal(t, "upstream-token", repo.token)
	assert.Equal(t, "image/jpeg", repo.submitted[0].PhotoType)
	assert.Equal(t, res.ProofKey, repo.submitted[0].ProofKey)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AttendanceCaptures.WithLabelValues("check_in", "accepted")))
}

func TestCapture_OutsideEveryOffice(t *testing.T) {
	repo := &fakeAttendanceRepository{}
	svc := NewAttendanceService(repo, Options{RadiusKm: 5})

	req := chennaiCapture()
	req.Latitude, req.Longitude = ptr(51.5072), ptr(-0.1276)
	res, err := svc.Capture(context.Background(), testSession(), req)
	require.NoError(t, err)
	assert.Nil(t, res.Office)
	require.Len(t, repo.submitted, 1)
	assert.Nil(t, repo.submitted[0].Office)

	strict := NewAttendanceService(repo, Options{RadiusKm: 5, RequireOffice: true})
	_, err = strict.Capture(context.Background(), testSession(), req)
	assert.ErrorIs(t, err, attendance.ErrOutsideOffice)
	assert.Len(t, repo.submitted, 1)
}

func TestCapture_NegativeLongitudeChennaiDoesNotMatch(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceRepository{}, Options{RadiusKm: 5})
	resp, err := svc.NearestOffice(attendance.NearestOfficeRequest{Latitude: 13.0827, Longitude: -80.2707})
	require.NoError(t, err)
	assert.Nil(t, resp.Office)
}

func TestCapture_GeocoderFailureIgnored(t *testing.T) {
	repo := &fakeAttendanceRepository{}
	svc := NewAttendanceService(repo, Options{RadiusKm: 5, Geocoder: fakeGeocoder{err: errors.New("timeout")}})

	res, err := svc.Capture(context.Background(), testSession(), chennaiCapture())
	require.NoError(t, err)
	assert.Empty(t, res.Address)
	assert.Len(t, repo.submitted, 1)
}

func TestCapture_AcquisitionErrors(t *testing.T) {
	cases := []struct {
		location string
		camera   string
		want     error
	}{
		{location: attendance.LocationPermissionDenied, want: attendance.ErrLocationPermissionDenied},
		{location: attendance.LocationPositionUnavailable, want: attendance.ErrLocationUnavailable},
		{location: attendance.LocationTimeout, want: attendance.ErrLocationTimeout},
		{camera: attendance.CameraPermissionDenied, want: attendance.ErrCameraPermissionDenied},
		{camera: attendance.CameraNotFound, want: attendance.ErrCameraUnavailable},
	}
	for _, c := range cases {
		repo := &fakeAttendanceRepository{}
		svc := NewAttendanceService(repo, Options{RadiusKm: 5})
		req := chennaiCapture()
		req.LocationError, req.CameraError = c.location, c.camera

		_, err := svc.Capture(context.Background(), testSession(), req)
		assert.ErrorIs(t, err, c.want)
		assert.Empty(t, repo.submitted)
	}
}

func TestCapture_InvalidPhotoAndCoordinates(t *testing.T) {
	repo := &fakeAttendanceRepository{}
	svc := NewAttendanceService(repo, Options{RadiusKm: 5})

	req := chennaiCapture()
	req.Photo = []byte("GIF89a not allowed")
	req.Latitude = ptr(95)
	_, err := svc.Capture(context.Background(), testSession(), req)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "photo")
	assert.Contains(t, verrs.ToMap(), "latitude")
	assert.Empty(t, repo.submitted)
}

func TestCapture_NonFiniteCoordinatesNeverSubmitted(t *testing.T) {
	repo := &fakeAttendanceRepository{}
	m := metrics.New()
	svc := NewAttendanceService(repo, Options{RadiusKm: 5, RequireOffice: true, Metrics: m})

	req := chennaiCapture()
	req.Latitude, req.Longitude = ptr(math.NaN()), ptr(math.NaN())
	_, err := svc.Capture(context.Background(), testSession(), req)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "latitude")
	assert.Contains(t, verrs.ToMap(), "longitude")
	assert.Empty(t, repo.submitted)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AttendanceCaptures.WithLabelValues("check_in", "invalid")))

	_, err = svc.NearestOffice(attendance.NearestOfficeRequest{Latitude: math.Inf(1), Longitude: 80.2707})
	assert.True(t, errors.As(err, &verrs))
}

func TestCapture_UpstreamFailure(t *testing.T) {
	repo := &fakeAttendanceRepository{err: errors.New("upstream down")}
	m := metrics.New()
	svc := NewAttendanceService(repo, Options{RadiusKm: 5, Metrics: m})

	_, err := svc.Capture(context.Background(), testSession(), chennaiCapture())
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AttendanceCaptures.WithLabelValues("check_in", "failed")))
}

func TestCapture_DefaultsCapturedAt(t *testing.T) {
	repo := &fakeAttendanceRepository{}
	svc := NewAttendanceService(repo, Options{RadiusKm: 5}).(*AttendanceServiceImpl)
	fixed := time.Date(2024, 3, 4, 4, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	_, err := svc.Capture(context.Background(), testSession(), chennaiCapture())
	require.NoError(t, err)
	assert.Equal(t, fixed, repo.submitted[0].CapturedAt)
}

func TestOfficesDefault(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceRepository{}, Options{RadiusKm: 5})
	assert.Equal(t, geo.DefaultOffices, svc.Offices())
}
