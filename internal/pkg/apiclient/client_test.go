package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/api", 5*time.Second, opts...)
	require.NoError(t, err)
	return c
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("ftp://example.com", time.Second)
	assert.Error(t, err)
}

func TestClient_Get_AttachesBearerAndUnwraps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/employee", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "engineering", r.URL.Query().Get("department"))
		w.Write([]byte(`{"success":true,"data":[{"id":"1"}]}`))
	})

	body, err := c.Get(context.Background(), "tok-123", "/employee", url.Values{"department": {"engineering"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(body))
}

func TestClient_Post_NoTokenSendsNoAuthorization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "a@b.cd", in["email"])
		w.Write([]byte(`{"token":"x"}`))
	})

	body, err := c.Post(context.Background(), "", "/auth/login", map[string]string{"email": "a@b.cd"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"x"}`, string(body))
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":[{"message":"end date before start date"}]}`))
	})

	_, err := c.Put(context.Background(), "tok", "/shift/1", map[string]string{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "end date before start date", apiErr.Message)
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestClient_UnauthorizedHook(t *testing.T) {
	called := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"jwt expired"}`))
	}, WithUnauthorizedHook(func(ctx context.Context) { called++ }))

	_, err := c.Get(context.Background(), "tok", "/role", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, 1, called)

	// Anonymous calls (login) never trigger the hook.
	_, err = c.Post(context.Background(), "", "/auth/login", nil)
	require.Error(t, err)
	assert.Equal(t, 1, called)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c, err := NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "tok", "/employee", nil)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestClient_DeleteEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	assert.NoError(t, c.Delete(context.Background(), "tok", "/asset/9"))
}

func TestClient_PostMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "13.0827", r.FormValue("latitude"))
		f, fh, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		content, _ := io.ReadAll(f)
		assert.Equal(t, "capture.jpg", fh.Filename)
		assert.Equal(t, "image/jpeg", fh.Header.Get("Content-Type"))
		assert.Equal(t, []byte("jpeg-bytes"), content)
		w.Write([]byte(`{"data":{"id":"a1"}}`))
	})

	body, err := c.PostMultipart(context.Background(), "tok", "/attendance/check-in", Multipart{
		Fields: map[string]string{"latitude": "13.0827"},
		Files:  []FilePart{{Field: "image", Filename: "capture.jpg", ContentType: "image/jpeg", Content: []byte("jpeg-bytes")}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a1"}`, string(body))
}

func TestClient_Metrics(t *testing.T) {
	m := metrics.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}, WithMetrics(m))

	_, err := c.Get(context.Background(), "tok", "/holiday", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues(http.MethodGet, "2xx")))
}

func TestExtractMessage(t *testing.T) {
	cases := []struct {
		body   string
		status int
		want   string
	}{
		{`{"message":"Invalid credentials"}`, 401, "Invalid credentials"},
		{`{"error":{"message":"nested"}}`, 400, "nested"},
		{`{"error":"flat"}`, 400, "flat"},
		{`{"detail":"not allowed"}`, 403, "not allowed"},
		{`{"errors":["first","second"]}`, 422, "first"},
		{`{}`, 404, "Not Found"},
		{`plain text failure`, 500, "plain text failure"},
		{`<html>bad gateway</html>`, 502, "Bad Gateway"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ExtractMessage([]byte(c.body), c.status), c.body)
	}
}
