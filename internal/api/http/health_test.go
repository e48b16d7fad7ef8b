package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GoSim-25-26J-441/portfolio-api/internal/storage/mongodb"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	available bool
	name      string
	pingErr   error
	names     []string
	namesErr  error
	panicOn   string
}

func (f *fakeStore) Available() bool { return f.available }

func (f *fakeStore) Name() string {
	if f.panicOn == "name" {
		panic("handle closed")
	}
	return f.name
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) CollectionNames(context.Context) ([]string, error) {
	if f.panicOn == "collections" {
		panic("cursor exploded")
	}
	return f.names, f.namesErr
}

func serve(t *testing.T, register func(gin.IRouter), method, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	register(router)

	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRoot(t *testing.T) {
	handler := NewHealthHandler("portfolio-api", "1.0.0", nil)
	rr := serve(t, handler.RegisterRoutes, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message": "Portfolio API running"}`, rr.Body.String())
}

func TestHealthCheck(t *testing.T) {
	cases := []struct {
		name  string
		store Store
		db    string
	}{
		{"no store", nil, "disabled"},
		{"unavailable store", mongodb.Unavailable(), "disabled"},
		{"ping ok", &fakeStore{available: true}, "up"},
		{"ping fails", &fakeStore{available: true, pingErr: errors.New("no primary")}, "down"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHealthHandler("test-service", "1.0.0", tc.store)
			rr := serve(t, handler.RegisterRoutes, http.MethodGet, "/health")
			require.Equal(t, http.StatusOK, rr.Code)

			var response HealthResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
			assert.Equal(t, "healthy", response.Status)
			assert.Equal(t, "test-service", response.Service)
			assert.Equal(t, "1.0.0", response.Version)
			assert.Equal(t, tc.db, response.DB)
		})
	}
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	handler := NewHealthHandler("test-service", "1.0.0", nil)
	rr := serve(t, handler.RegisterRoutes, http.MethodPost, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func diagnose(t *testing.T, store Store, env EnvStatus) DiagnosticsResponse {
	t.Helper()
	handler := NewDiagnosticsHandler(store, env)
	rr := serve(t, handler.RegisterRoutes, http.MethodGet, "/test")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp DiagnosticsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestDiagnostics_NoStoreConfigured(t *testing.T) {
	resp := diagnose(t, mongodb.Unavailable(), EnvStatus{})

	assert.Contains(t, resp.Backend, "Running")
	assert.Equal(t, "❌ Not Available", resp.Database)
	assert.Equal(t, "❌ Not Set", resp.DatabaseURL)
	assert.Equal(t, "❌ Not Set", resp.DatabaseName)
	assert.Equal(t, "Not Connected", resp.ConnectionStatus)
	assert.Empty(t, resp.Collections)
	assert.NotNil(t, resp.Collections)
}

func TestDiagnostics_Working(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	resp := diagnose(t, &fakeStore{available: true, name: "portfolio", names: names},
		EnvStatus{DatabaseURLSet: true, DatabaseNameSet: true})

	assert.Equal(t, "✅ Running", resp.Backend)
	assert.Equal(t, "✅ Connected & Working", resp.Database)
	assert.Equal(t, "✅ Set", resp.DatabaseURL)
	assert.Equal(t, "✅ Set", resp.DatabaseName)
	assert.Equal(t, "portfolio", resp.DatabaseHandle)
	assert.Equal(t, "Connected", resp.ConnectionStatus)
	assert.Equal(t, names[:10], resp.Collections)
}

func TestDiagnostics_CheckFailuresAreDowngraded(t *testing.T) {
	t.Run("collection listing error", func(t *testing.T) {
		long := strings.Repeat("x", 80)
		resp := diagnose(t, &fakeStore{available: true, name: "portfolio", namesErr: errors.New(long)},
			EnvStatus{DatabaseURLSet: true})

		assert.Equal(t, "⚠️  Connected but Error: "+strings.Repeat("x", 50), resp.Database)
		assert.Equal(t, "Connected", resp.ConnectionStatus)
		assert.Equal(t, "✅ Set", resp.DatabaseURL)
		assert.Equal(t, "❌ Not Set", resp.DatabaseName)
		assert.Empty(t, resp.Collections)
	})

	t.Run("collection listing panic", func(t *testing.T) {
		resp := diagnose(t, &fakeStore{available: true, panicOn: "collections"}, EnvStatus{})
		assert.Equal(t, "⚠️  Connected but Error: cursor exploded", resp.Database)
		assert.Contains(t, resp.Backend, "Running")
	})

	t.Run("name panic", func(t *testing.T) {
		resp := diagnose(t, &fakeStore{available: true, panicOn: "name", names: []string{"project"}}, EnvStatus{})
		assert.Equal(t, "⚠️  handle closed", resp.DatabaseHandle)
		assert.Equal(t, "✅ Connected & Working", resp.Database)
		assert.Equal(t, []string{"project"}, resp.Collections)
	})
}
