package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/shift"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/metrics"
	"github.com/cmlabs-hris/hrms-portal/internal/repository/memory"
	"github.com/cmlabs-hris/hrms-portal/internal/repository/upstream"
	accessService "github.com/cmlabs-hris/hrms-portal/internal/service/access"
	authService "github.com/cmlabs-hris/hrms-portal/internal/service/auth"
	resourceService "github.com/cmlabs-hris/hrms-portal/internal/service/resource"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

func (m *memorySessions) Create(ctx context.Context, s session.Session) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil, nil
}

func (m *memorySessions) GetByID(ctx context.Context, id string) (session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return session.Session{}, session.ErrSessionNotFound
	}
	return s, nil
}

func (m *memorySessions) UpdateLastRole(ctx context.Context, id, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return session.ErrSessionNotFound
	}
	s.LastRole = role
	m.sessions[id] = s
	return nil
}

func (m *memorySessions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memorySessions) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (m *memorySessions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// fakeHRMS is the upstream API: login, logout (always failing), roles and shifts.
type fakeHRMS struct {
	server      *httptest.Server
	shiftWrites atomic.Int32
	logouts     atomic.Int32
}

func newFakeHRMS(t *testing.T) *fakeHRMS {
	f := &fakeHRMS{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"access_token":"upstream-token","user":{"id":"u-1","email":"asha@example.com","name":"Asha","roles":["Scheduler"]}}}`))
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		f.logouts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("GET /role", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"name":"Scheduler","modules":{"shifts":{"view":true,"create":true,"edit":false,"approve":false},"dashboard":{"view":true},"attendance":{"view":true}}}]}`))
	})
	mux.HandleFunc("GET /shift", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"S1","name":"Morning","start_time":"09:00","end_time":"17:00","grace_minutes":10,"status":"active"}]}`))
	})
	mux.HandleFunc("POST /shift", func(w http.ResponseWriter, r *http.Request) {
		f.shiftWrites.Add(1)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"S2","name":"Night","start_time":"22:00","end_time":"23:30","grace_minutes":0,"status":"active"}}`))
	})
	mux.HandleFunc("PUT /shift/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.shiftWrites.Add(1)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"S1","name":"Morning","start_time":"09:00","end_time":"17:00"}}`))
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

type routerFixture struct {
	router   http.Handler
	uploads  string
	hrms     *fakeHRMS
	sessions *memorySessions
	metrics  *metrics.Metrics
}

func newRouterFixture(t *testing.T) *routerFixture {
	hrms := newFakeHRMS(t)
	m := metrics.New()
	client, err := apiclient.NewClient(hrms.server.URL, 5*time.Second, apiclient.WithMetrics(m))
	require.NoError(t, err)

	sessions := &memorySessions{sessions: map[string]session.Session{}}
	jwtService := jwt.NewJWTService(handlerTestSecret, false)
	accessSvc := accessService.NewAccessService(upstream.NewRoleRepository(client), memory.NewRoleCache(), nil)
	authSvc := authService.NewAuthService(upstream.NewAuthGateway(client), sessions, accessSvc, jwtService, time.Hour)
	shiftSvc := resourceService.NewService[shift.Shift, shift.ShiftRequest](upstream.NewShiftRepository(client), shift.Filters)
	uploads := t.TempDir()

	router := NewRouter(RouterOptions{
		Env:         "test",
		Version:     "test",
		LogLevel:    slog.LevelError,
		CORSOrigins: []string{"http://localhost:3000"},
		UploadsDir:  uploads,
		Metrics:     m,
	}, jwtService, authSvc, accessSvc, Handlers{
		Auth:   NewAuthHandler(jwtService, authSvc),
		Access: NewAccessHandler(accessSvc),
		Shifts: NewResourceHandler("Shift", shiftSvc),
	})

	return &routerFixture{router: router, uploads: uploads, hrms: hrms, sessions: sessions, metrics: m}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (f *routerFixture) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == jwt.CookieName {
			return c
		}
	}
	t.Fatalf("response carries no %s cookie", jwt.CookieName)
	return nil
}

func (f *routerFixture) login(t *testing.T) *http.Cookie {
	rec, env := f.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "asha@example.com", "password": "secret"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, env.Success)
	return sessionCookie(t, rec)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	f := newRouterFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "asha@example.com", "password": "secret"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	var data struct {
		Token      string `json:"token"`
		ActiveRole string `json:"activeRole"`
		User       struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, cookie.Value, data.Token)
	assert.Equal(t, "asha@example.com", data.User.Email)
	assert.Equal(t, "Scheduler", data.ActiveRole)
	assert.Equal(t, 1, f.sessions.count())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newRouterFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "asha@example.com", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, 0, f.sessions.count())
}

func TestLogin_ValidationNeverReachesUpstream(t *testing.T) {
	f := newRouterFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "not-an-email"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "password")
}

func TestMe_RequiresSession(t *testing.T) {
	f := newRouterFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/api/v1/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/me", nil, &http.Cookie{Name: jwt.CookieName, Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := f.login(t)
	rec, env := f.do(t, http.MethodGet, "/api/v1/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "asha@example.com")
}

func TestBearerHeaderAccepted(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.login(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shifts", nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"startTime":"09:00"`)
}

func TestShiftCreate_InvalidTimesNeverReachUpstream(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.login(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/shifts", map[string]interface{}{
		"name":       "Broken",
		"start_time": "18:00",
		"end_time":   "09:00",
	}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "end_time must be after start_time", env.Error.Details["end_time"])
	assert.Equal(t, int32(0), f.hrms.shiftWrites.Load())

	rec, _ = f.do(t, http.MethodPost, "/api/v1/shifts", map[string]interface{}{
		"name":       "Night",
		"start_time": "22:00",
		"end_time":   "23:30",
	}, cookie)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int32(1), f.hrms.shiftWrites.Load())
}

func TestModuleGate(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.login(t)

	// The role table grants shifts view/create but not edit.
	rec, _ := f.do(t, http.MethodPut, "/api/v1/shifts/S1", map[string]interface{}{
		"name":       "Morning",
		"start_time": "09:00",
		"end_time":   "17:00",
	}, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, int32(0), f.hrms.shiftWrites.Load())
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.AccessDenied.WithLabelValues("shifts", "edit")))

	rec, _ = f.do(t, http.MethodDelete, "/api/v1/shifts/S1", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/roles", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAccessSnapshot(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.login(t)

	rec, env := f.do(t, http.MethodGet, "/api/v1/me/access", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Loaded  bool                       `json:"loaded"`
		Modules map[string]map[string]bool `json:"modules"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Loaded)
	assert.True(t, data.Modules["shifts"]["create"])
	assert.False(t, data.Modules["shifts"]["edit"])
	assert.NotContains(t, data.Modules, "payroll")
}

func TestLogout_UpstreamFailureStillEndsSession(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.login(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(1), f.hrms.logouts.Load())
	assert.JSONEq(t, `{"redirect_to":"/login"}`, string(env.Data))
	assert.Equal(t, 0, f.sessions.count())

	cleared := sessionCookie(t, rec)
	assert.Less(t, cleared.MaxAge, 0)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_WithoutSession(t *testing.T) {
	f := newRouterFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"redirect_to":"/login"}`, string(env.Data))
	assert.Equal(t, int32(0), f.hrms.logouts.Load())
}

func (f *routerFixture) writeUpload(t *testing.T, key, content string) {
	t.Helper()
	full := filepath.Join(f.uploads, filepath.FromSlash(key))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestUploads_ScopedToOwner(t *testing.T) {
	f := newRouterFixture(t)
	own := attendance.ProofKeyPrefix("u-1") + "2024/03/check_in-own.jpg"
	other := attendance.ProofKeyPrefix("u-2") + "2024/03/check_in-other.jpg"
	f.writeUpload(t, own, "own-photo")
	f.writeUpload(t, other, "other-photo")

	rec, _ := f.do(t, http.MethodGet, "/api/v1/uploads/"+own, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := f.login(t)
	rec, _ = f.do(t, http.MethodGet, "/api/v1/uploads/"+own, nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "own-photo", rec.Body.String())

	// The role grants attendance view but not edit.
	rec, _ = f.do(t, http.MethodGet, "/api/v1/uploads/"+other, nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "other-photo")

	rec, _ = f.do(t, http.MethodGet, "/api/v1/uploads/attendance/u-1/../u-2/2024/03/check_in-other.jpg", nil, cookie)
	assert.NotEqual(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "other-photo")
	assert.GreaterOrEqual(t, testutil.ToFloat64(f.metrics.AccessDenied.WithLabelValues("attendance", "edit")), float64(1))
}

func TestMetricsEndpoint(t *testing.T) {
	f := newRouterFixture(t)
	f.login(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hrms_portal_upstream_requests_total")
}
