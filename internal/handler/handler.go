package handler

import (
	"net/http"

	"shop-server/internal/config"
	"shop-server/internal/interfaces"
	"shop-server/internal/service"

	"github.com/gin-gonic/gin"
)

// APIHandler composes the services behind the HTTP surface.
type APIHandler struct {
	productService service.ProductService
	authService    service.AuthService
	uploadService  service.UploadService
	userRepo       interfaces.UserRepository
	cfg            *config.Config
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(productService service.ProductService, authService service.AuthService, uploadService service.UploadService, userRepo interfaces.UserRepository, cfg *config.Config) *APIHandler {
	return &APIHandler{
		productService: productService,
		authService:    authService,
		uploadService:  uploadService,
		userRepo:       userRepo,
		cfg:            cfg,
	}
}

// RegisterRoutes wires the API routes. Reads on the product catalog are
// public; every write and the upload broker sit behind the auth middleware.
func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.GET("/health", h.health)

	products := api.Group("/products")
	{
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
		products.POST("", h.AuthMiddleware(), h.createProduct)
		products.PUT("/:id", h.AuthMiddleware(), h.updateProduct)
		products.DELETE("/:id", h.AuthMiddleware(), h.deleteProduct)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}

	uploads := api.Group("/uploads")
	uploads.Use(h.AuthMiddleware())
	{
		uploads.POST("/presign", h.presignUpload)
	}

	debug := api.Group("/debug")
	debug.Use(h.AuthMiddleware())
	{
		debug.GET("/tables", h.debugTables)
		debug.GET("/users", h.debugUsers)
	}
}

// health reports liveness plus the effective backend wiring: the first thing
// operators need when the in-memory fallback kicks in unnoticed.
func (h *APIHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"productsTable": orNull(h.cfg.ProductsTable),
		"usersTable":    orNull(h.cfg.UsersTableName()),
		"region":        h.cfg.AWSRegion,
	})
}

func orNull(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
