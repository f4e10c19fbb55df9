// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/avpetrescu/catalog-admin/internal/config"
	"github.com/avpetrescu/catalog-admin/internal/handlers"
	"github.com/avpetrescu/catalog-admin/internal/middleware"
	"github.com/avpetrescu/catalog-admin/internal/services"
	"github.com/avpetrescu/catalog-admin/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg.Storage)
	if err != nil {
		return nil, err
	}
	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db, storageService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Trailing slashes kept for compatibility with existing callers;
	// gin redirects the slash-less forms.
	r.POST("/login/", middleware.AuthRateLimit(), authHandler.Login)
	r.POST("/products/", middleware.UploadRateLimit(), middleware.OptionalAuth(), productHandler.CreateProduct)
	r.GET("/products/", productHandler.ListProducts)

	// Serve stored images when the local storage backend is in use.
	if cfg.Storage.AWS.AccessKeyID == "" {
		r.Static(cfg.Storage.PublicPath, cfg.Storage.ImageDir)
	}

	return r, nil
}
