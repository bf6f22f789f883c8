package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiveden/sysmetrics/internal/defaults"
	"github.com/hiveden/sysmetrics/internal/hw"
)

// requestContext bounds a request the way the CLI bounds the same calls.
func (h *APIHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := h.timeout
	if timeout <= 0 {
		timeout = defaults.CollectTimeout
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

type hardwareResult struct {
	info *hw.HardwareInfo
	err  error
}

// GetHardwareInfo handles the GET /hw endpoint.
func (h *APIHandler) GetHardwareInfo(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	// ghw takes no context; the inventory is abandoned if it outlives ctx.
	done := make(chan hardwareResult, 1)
	go func() {
		info, err := h.hardware()
		done <- hardwareResult{info: info, err: err}
	}()

	select {
	case <-ctx.Done():
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "hardware inventory: " + ctx.Err().Error()})
	case res := <-done:
		if res.err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.err.Error()})
			return
		}
		c.JSON(http.StatusOK, res.info)
	}
}

// GetSystemInfo handles the GET /system endpoint.
func (h *APIHandler) GetSystemInfo(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	sysInfo, err := h.system(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"system":     sysInfo,
		"descriptor": sysInfo.Descriptor(),
	})
}
