package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hiveden/sysmetrics/internal/defaults"
	"github.com/hiveden/sysmetrics/internal/hw"
)

// TagSource produces run tags.
type TagSource interface {
	Tags(ctx context.Context) map[string]string
}

// APIHandler serves host facts over HTTP.
type APIHandler struct {
	tags     TagSource
	hardware func() (*hw.HardwareInfo, error)
	system   func(ctx context.Context) (*hw.SystemInfo, error)
	timeout  time.Duration
}

// NewAPIHandler creates a handler backed by tags and the local host.
func NewAPIHandler(tags TagSource) *APIHandler {
	return &APIHandler{
		tags:     tags,
		hardware: hw.GetHardwareInfo,
		system:   hw.GetSystemInfo,
		timeout:  defaults.CollectTimeout,
	}
}

// NewRouter registers every endpoint on a new gin engine.
func NewRouter(h *APIHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", h.Health)
	r.GET("/tags", h.GetTags)
	r.GET("/hw", h.GetHardwareInfo)
	r.GET("/system", h.GetSystemInfo)

	return r
}

// Health handles the GET /healthz endpoint.
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
