package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/aivision"
	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/internal/service"
)

// HandleCreateProduct handles POST /v1/admin/products
func HandleCreateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ProductUpsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		catalog := service.NewCatalogService(repos, logger)
		product, err := catalog.CreateProduct(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, productResponseOf(product, localeOf(c)))
	}
}

// HandleUpdateProduct handles PUT /v1/admin/products/:id
func HandleUpdateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		var req service.ProductUpsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		catalog := service.NewCatalogService(repos, logger)
		product, err := catalog.UpdateProduct(c.Request.Context(), productID, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, productResponseOf(product, localeOf(c)))
	}
}

// HandleDeleteProduct handles DELETE /v1/admin/products/:id
func HandleDeleteProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		catalog := service.NewCatalogService(repos, logger)
		if err := catalog.DeleteProduct(c.Request.Context(), productID); err != nil {
			respondError(c, logger, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleReorderImages handles PUT /v1/admin/products/:id/images/order
func HandleReorderImages(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		var req service.ReorderImagesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		catalog := service.NewCatalogService(repos, logger)
		if err := catalog.ReorderImages(c.Request.Context(), productID, req.ImageIDs); err != nil {
			respondError(c, logger, err)
			return
		}

		product, err := catalog.GetProduct(c.Request.Context(), productID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, productResponseOf(product, localeOf(c)))
	}
}

// HandleImportCSV handles POST /v1/admin/products/import
func HandleImportCSV(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
			return
		}
		defer file.Close()

		importer := service.NewImportService(repos, logger)
		result, err := importer.ImportCSV(c.Request.Context(), file)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// AnalyzeImageRequest asks the AI adapter to pre-fill a product form
type AnalyzeImageRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
}

// HandleAnalyzeImage handles POST /v1/admin/products/analyze
func HandleAnalyzeImage(vision *aivision.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnalyzeImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		draft, err := vision.Analyze(c.Request.Context(), req.ImageURL)
		if err != nil {
			logger.Error("Image analysis failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "image analysis failed"})
			return
		}

		c.JSON(http.StatusOK, draft)
	}
}

// HandleListAllOrders handles GET /v1/admin/orders
func HandleListAllOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)

		status := domain.OrderStatus(c.DefaultQuery("status", string(domain.OrderStatusPending)))
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		orders, err := repos.Order.ListByStatus(c.Request.Context(), status, limit, offset)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		responses := make([]gin.H, len(orders))
		for i, order := range orders {
			responses[i] = gin.H{
				"id":            order.ID.String(),
				"user_id":       order.UserID.String(),
				"status":        order.Status,
				"total":         order.Total,
				"currency":      order.Currency,
				"customer_name": order.CustomerName,
				"created_at":    order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": responses,
			"limit":  limit,
			"offset": offset,
		})
	}
}

// HandleOrderTransition handles the admin order status endpoints:
// POST /v1/admin/orders/:id/{confirm,ship,deliver,cancel}
func HandleOrderTransition(repos *repository.Repositories, target domain.OrderStatus, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		orders := service.NewOrderService(repos, logger)

		switch target {
		case domain.OrderStatusConfirmed:
			err = orders.ConfirmOrder(c.Request.Context(), orderID)
		case domain.OrderStatusShipped:
			err = orders.ShipOrder(c.Request.Context(), orderID)
		case domain.OrderStatusDelivered:
			err = orders.DeliverOrder(c.Request.Context(), orderID)
		case domain.OrderStatusCancelled:
			err = orders.CancelOrder(c.Request.Context(), orderID)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported transition"})
			return
		}
		if err != nil {
			respondError(c, logger, err)
			return
		}

		order, err := repos.Order.GetByID(c.Request.Context(), orderID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     order.ID.String(),
			"status": order.Status,
		})
	}
}
