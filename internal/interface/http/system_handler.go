package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/thinkel-blog-api/pkg/response"
)

// HealthCheck probes one backend. A non-nil error marks it down.
type HealthCheck func(ctx context.Context) error

type SystemHandler struct {
	AppName string
	Env     string
	Checks  map[string]HealthCheck
	started time.Time
}

func NewSystemHandler(appName, env string) *SystemHandler {
	return &SystemHandler{AppName: appName, Env: env, started: time.Now()}
}

// Root GET /
func (h *SystemHandler) Root(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"name":    h.AppName,
		"env":     h.Env,
		"version": "v1",
		"endpoints": gin.H{
			"auth":     "/api/auth",
			"users":    "/api/users",
			"posts":    "/api/posts",
			"comments": "/api/comments",
			"contact":  "/api/contact",
		},
	}, "API funcionando")
}

// Health GET /health
// Answers 503 when any configured backend check fails.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	checks := make(gin.H, len(h.Checks))
	for name, check := range h.Checks {
		if err := check(ctx); err != nil {
			checks[name] = "down"
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	response.Success(c, code, gin.H{
		"status": status,
		"uptime": time.Since(h.started).Round(time.Second).String(),
		"checks": checks,
	}, "")
}

// NotFound answers unknown routes.
func (h *SystemHandler) NotFound(c *gin.Context) {
	response.Error(c, http.StatusNotFound, "Ruta "+c.Request.URL.Path+" no encontrada", nil)
}
