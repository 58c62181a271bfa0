package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// debugTables exposes the effective table wiring for operators.
func (h *APIHandler) debugTables(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"productsTable": orNull(h.cfg.ProductsTable),
		"usersTable":    orNull(h.cfg.UsersTableName()),
		"region":        h.cfg.AWSRegion,
	})
}

// debugUsers lists account summaries. The repository projection guarantees
// no credential material is in the response.
func (h *APIHandler) debugUsers(c *gin.Context) {
	summaries, err := h.userRepo.ListSummaries(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}
