package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/pkg/errors"
)

// respondError maps typed service errors to HTTP statuses. Anything
// unrecognized is logged and reported as a generic 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ErrValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": e.Error()})
	case *errors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": e.Error()})
	case *errors.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": e.Error()})
	case *errors.ErrInvalidStateTransition:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
	case *errors.ErrMinimumNotMet:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "order minimum not met",
			"minimum_value":     e.Minimum,
			"total":             e.Total,
			"minimum_remaining": e.Remaining,
		})
	case *errors.ErrOutOfStock:
		c.JSON(http.StatusConflict, gin.H{
			"error":      "insufficient stock",
			"product_id": e.ProductID,
			"requested":  e.Requested,
			"available":  e.Available,
		})
	default:
		logger.Error("Internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
