package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/aivision"
	"github.com/tacticalshop/storeapi/internal/api/handlers"
	"github.com/tacticalshop/storeapi/internal/api/middleware"
	"github.com/tacticalshop/storeapi/internal/config"
	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	repos *repository.Repositories,
	carts *service.CartService,
	vision *aivision.Client,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Public storefront routes
		v1.POST("/auth/register", handlers.HandleRegister(repos, cfg.Auth, logger))
		v1.POST("/auth/login", handlers.HandleLogin(repos, cfg.Auth, logger))
		v1.GET("/products", handlers.HandleListProducts(repos, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(repos, logger))
		v1.GET("/categories", handlers.HandleListCategories(repos, logger))
		v1.GET("/brands", handlers.HandleListBrands(repos, logger))

		// Cart routes (anonymous session, no login required)
		cartRoutes := v1.Group("/cart")
		cartRoutes.Use(middleware.SessionMiddleware())
		{
			cartRoutes.GET("", handlers.HandleGetCart(carts, logger))
			cartRoutes.DELETE("", handlers.HandleClearCart(carts, logger))
			cartRoutes.POST("/items", handlers.HandleAddItem(carts, logger))
			cartRoutes.PUT("/items/:lineID", handlers.HandleUpdateQuantity(carts, logger))
			cartRoutes.DELETE("/items/:lineID", handlers.HandleRemoveItem(carts, logger))
		}

		// Authenticated customer routes
		userRoutes := v1.Group("")
		userRoutes.Use(middleware.AuthMiddleware(repos, cfg.Auth, logger))
		{
			userRoutes.GET("/me", handlers.HandleMe())
			userRoutes.GET("/orders", handlers.HandleListMyOrders(repos, logger))
			userRoutes.GET("/orders/:id", handlers.HandleGetOrder(repos, logger))
			userRoutes.GET("/analytics", handlers.HandleMyAnalytics(repos, logger))

			checkoutRoutes := userRoutes.Group("")
			checkoutRoutes.Use(middleware.SessionMiddleware())
			checkoutRoutes.POST("/checkout", handlers.HandleCheckout(carts, repos, cfg.Order.MinimumValue, logger))
		}

		// Admin back-office routes
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(repos, cfg.Auth, logger))
		adminRoutes.Use(middleware.AdminOnly())
		{
			adminRoutes.POST("/products", handlers.HandleCreateProduct(repos, logger))
			adminRoutes.PUT("/products/:id", handlers.HandleUpdateProduct(repos, logger))
			adminRoutes.DELETE("/products/:id", handlers.HandleDeleteProduct(repos, logger))
			adminRoutes.PUT("/products/:id/images/order", handlers.HandleReorderImages(repos, logger))
			adminRoutes.POST("/products/import", handlers.HandleImportCSV(repos, logger))
			adminRoutes.POST("/products/analyze", handlers.HandleAnalyzeImage(vision, logger))

			adminRoutes.GET("/orders", handlers.HandleListAllOrders(repos, logger))
			adminRoutes.POST("/orders/:id/confirm", handlers.HandleOrderTransition(repos, domain.OrderStatusConfirmed, logger))
			adminRoutes.POST("/orders/:id/ship", handlers.HandleOrderTransition(repos, domain.OrderStatusShipped, logger))
			adminRoutes.POST("/orders/:id/deliver", handlers.HandleOrderTransition(repos, domain.OrderStatusDelivered, logger))
			adminRoutes.POST("/orders/:id/cancel", handlers.HandleOrderTransition(repos, domain.OrderStatusCancelled, logger))

			adminRoutes.GET("/analytics", handlers.HandleStoreAnalytics(repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
