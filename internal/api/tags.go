package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetTags handles the GET /tags endpoint. Collection failures are reported
// inside the tag map, so the response is always 200.
func (h *APIHandler) GetTags(c *gin.Context) {
	c.JSON(http.StatusOK, h.tags.Tags(c.Request.Context()))
}
