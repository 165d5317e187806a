package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/api/middleware"
	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/internal/service"
)

// OrderResponse represents the order response
type OrderResponse struct {
	ID              string                 `json:"id"`
	Status          domain.OrderStatus     `json:"status"`
	Total           float64                `json:"total"`
	Currency        string                 `json:"currency"`
	CustomerName    string                 `json:"customer_name"`
	CustomerPhone   string                 `json:"customer_phone,omitempty"`
	ShippingAddress map[string]interface{} `json:"shipping_address"`
	Items           []OrderItemResponse    `json:"items"`
	CreatedAt       string                 `json:"created_at"`
	UpdatedAt       string                 `json:"updated_at"`
}

type OrderItemResponse struct {
	ProductID    string               `json:"product_id"`
	Name         domain.LocalizedText `json:"name"`
	UnitPrice    float64              `json:"unit_price"`
	Quantity     int                  `json:"quantity"`
	SelectedSize string               `json:"selected_size,omitempty"`
}

// HandleCheckout handles POST /v1/checkout
func HandleCheckout(carts *service.CartService, repos *repository.Repositories, minimum float64, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		checkout := service.NewCheckoutService(carts, repos, minimum, logger)
		order, err := checkout.Checkout(c.Request.Context(), sessionID, user.ID, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"order_id": order.ID.String(),
			"status":   order.Status,
			"total":    order.Total,
		})
	}
}

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		order, err := repos.Order.GetByID(c.Request.Context(), orderID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		// Customers only see their own orders
		if order.UserID != user.ID && user.Role != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		items, err := repos.Order.GetItems(c.Request.Context(), orderID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, orderResponseOf(order, items))
	}
}

// HandleListMyOrders handles GET /v1/orders
func HandleListMyOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		limit, offset := pagination(c)

		orders, err := repos.Order.ListByUser(c.Request.Context(), user.ID, limit, offset)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		responses := make([]gin.H, len(orders))
		for i, order := range orders {
			responses[i] = gin.H{
				"id":         order.ID.String(),
				"status":     order.Status,
				"total":      order.Total,
				"currency":   order.Currency,
				"created_at": order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": responses,
			"limit":  limit,
			"offset": offset,
		})
	}
}

func orderResponseOf(order *domain.Order, items []*domain.OrderItem) OrderResponse {
	itemResponses := make([]OrderItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = OrderItemResponse{
			ProductID:    item.ProductID.String(),
			Name:         item.Name,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			SelectedSize: item.SelectedSize,
		}
	}

	return OrderResponse{
		ID:              order.ID.String(),
		Status:          order.Status,
		Total:           order.Total,
		Currency:        order.Currency,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		ShippingAddress: order.ShippingAddress,
		Items:           itemResponses,
		CreatedAt:       order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       order.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func pagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
