package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listProducts returns the full catalog. No pagination; enumeration order is
// backend-defined.
func (h *APIHandler) listProducts(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *APIHandler) getProduct(c *gin.Context) {
	product, err := h.productService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *APIHandler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: name and numeric price required"})
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req.Name, *req.Price, req.Description, req.ImageURL)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	productWritesTotal.WithLabelValues("create").Inc()
	c.JSON(http.StatusCreated, product)
}

func (h *APIHandler) updateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	product, err := h.productService.Update(c.Request.Context(), c.Param("id"), req.toUpdate())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	productWritesTotal.WithLabelValues("update").Inc()
	c.JSON(http.StatusOK, product)
}

func (h *APIHandler) deleteProduct(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	productWritesTotal.WithLabelValues("delete").Inc()
	c.Status(http.StatusNoContent)
}
