package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves operational endpoints
type SystemHandler struct {
	BaseHandler
	appName string
	version string
	pinger  func() error
}

// NewSystemHandler creates a new SystemHandler. The pinger is optional and
// checks the durable store when one is configured.
func NewSystemHandler(appName, version string, pinger func() error) *SystemHandler {
	return &SystemHandler{
		appName: appName,
		version: version,
		pinger:  pinger,
	}
}

// RegisterRoutes registers the system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports service liveness and store reachability
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	if h.pinger != nil {
		if err := h.pinger(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	c.JSON(code, gin.H{
		"status":  status,
		"app":     h.appName,
		"version": h.version,
	})
}
