package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *APIHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	token, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	registrationsTotal.Inc()
	c.JSON(http.StatusCreated, tokenResponse{Token: token})
}

func (h *APIHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	loginsTotal.Inc()
	c.JSON(http.StatusOK, tokenResponse{Token: token})
}
