package worker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp healthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Status
}

func TestHandleLiveness_AlwaysOK(t *testing.T) {
	h := NewHealthServer(":0", discardLogger())
	rec := httptest.NewRecorder()

	h.handleLiveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeStatus(t, rec))
}

func TestHandleReadiness_FollowsReadyState(t *testing.T) {
	h := NewHealthServer(":0", discardLogger())

	rec := httptest.NewRecorder()
	h.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not ready", decodeStatus(t, rec))

	h.SetReady(true)

	rec = httptest.NewRecorder()
	h.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeStatus(t, rec))

	h.SetReady(false)

	rec = httptest.NewRecorder()
	h.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
