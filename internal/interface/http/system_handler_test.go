package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func health(t *testing.T, checks map[string]HealthCheck) (int, map[string]any) {
	t.Helper()
	h := NewSystemHandler("thinkel-blog-api", "test")
	h.Checks = checks
	r := gin.New()
	r.GET("/health", h.Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body.Data
}

func TestHealth_AllChecksUp(t *testing.T) {
	ok := func(context.Context) error { return nil }
	code, data := health(t, map[string]HealthCheck{"postgres": ok, "redis": ok})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, map[string]any{"postgres": "ok", "redis": "ok"}, data["checks"])
}

func TestHealth_BackendDown(t *testing.T) {
	code, data := health(t, map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", data["status"])
	assert.Equal(t, map[string]any{"postgres": "ok", "redis": "down"}, data["checks"])
}
