package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/api/middleware"
	"github.com/tacticalshop/storeapi/internal/service"
)

// AppliedQuantity reports what the engine actually did, so the UI can
// warn when a requested quantity was clamped.
type AppliedQuantity struct {
	LineID  string `json:"line_id"`
	Applied int    `json:"applied_quantity"`
	Clamped bool   `json:"clamped"`
}

// CartMutationResponse is the cart summary plus the applied-quantity result
type CartMutationResponse struct {
	*service.CartSummary
	Result *AppliedQuantity `json:"result,omitempty"`
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		summary, err := carts.Summary(c.Request.Context(), sessionID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}

// HandleAddItem handles POST /v1/cart/items
func HandleAddItem(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		var req service.AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		summary, result, err := carts.AddItem(c.Request.Context(), sessionID, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, CartMutationResponse{
			CartSummary: summary,
			Result: &AppliedQuantity{
				LineID:  result.LineID,
				Applied: result.Applied,
				Clamped: result.Clamped,
			},
		})
	}
}

// HandleUpdateQuantity handles PUT /v1/cart/items/:lineID
func HandleUpdateQuantity(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		var req service.UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		summary, err := carts.UpdateQuantity(c.Request.Context(), sessionID, c.Param("lineID"), req.Quantity)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}

// HandleRemoveItem handles DELETE /v1/cart/items/:lineID
func HandleRemoveItem(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		summary, err := carts.RemoveItem(c.Request.Context(), sessionID, c.Param("lineID"))
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		if err := carts.ClearCart(c.Request.Context(), sessionID); err != nil {
			respondError(c, logger, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
