package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/api/middleware"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/internal/service"
)

// HandleStoreAnalytics handles GET /v1/admin/analytics
func HandleStoreAnalytics(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		months := intQuery(c, "months", 6)
		topN := intQuery(c, "top", 5)

		analytics := service.NewAnalyticsService(repos, logger)
		overview, err := analytics.StoreOverview(c.Request.Context(), months, topN)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, overview)
	}
}

// HandleMyAnalytics handles GET /v1/analytics
func HandleMyAnalytics(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		months := intQuery(c, "months", 6)

		analytics := service.NewAnalyticsService(repos, logger)
		overview, err := analytics.UserOverview(c.Request.Context(), user.ID, months)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, overview)
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil || value < 1 || value > 24 {
		return fallback
	}
	return value
}
