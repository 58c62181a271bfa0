package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// presignUpload mints a write authorization. The actual upload happens
// directly between the client and object storage.
func (h *APIHandler) presignUpload(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		presignRequestsTotal.WithLabelValues("rejected").Inc()
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "fileName and contentType are required"})
		return
	}

	auth, err := h.uploadService.Presign(c.Request.Context(), req.FileName, req.ContentType, req.Size)
	if err != nil {
		presignRequestsTotal.WithLabelValues("rejected").Inc()
		handleServiceError(c, err)
		return
	}

	presignRequestsTotal.WithLabelValues("issued").Inc()
	c.JSON(http.StatusOK, auth)
}
