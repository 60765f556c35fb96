package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbPingerMock struct {
	err error
}

func (m *dbPingerMock) Ping(_ context.Context) error {
	return m.err
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&dbPingerMock{err: errors.New("down")}, "v1")
	rec := httptest.NewRecorder()

	h.Live(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeHealth(t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{name: "db up", wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "db down", pingErr: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable, wantBody: "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthHandler(&dbPingerMock{err: tt.pingErr}, "v1")
			rec := httptest.NewRecorder()

			h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, decodeHealth(t, rec).Status)
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("db up", func(t *testing.T) {
		t.Parallel()

		h := NewHealthHandler(&dbPingerMock{}, "v1.2.3")
		rec := httptest.NewRecorder()

		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeHealth(t, rec)
		assert.Equal(t, "v1.2.3", resp.Version)
		require.NotNil(t, resp.Database)
		assert.Equal(t, "ok", resp.Database.Status)
		assert.NotEmpty(t, resp.Database.Latency)
	})

	t.Run("db down", func(t *testing.T) {
		t.Parallel()

		h := NewHealthHandler(&dbPingerMock{err: errors.New("timeout")}, "v1.2.3")
		rec := httptest.NewRecorder()

		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		resp := decodeHealth(t, rec)
		assert.Equal(t, "down", resp.Status)
		require.NotNil(t, resp.Database)
		assert.Equal(t, "down", resp.Database.Status)
	})
}
