package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/api/middleware"
	"github.com/tacticalshop/storeapi/internal/config"
	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/internal/service"
)

// AuthResponse carries the signed token and the user's public profile
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type UserProfile struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	FullName string          `json:"full_name"`
	Role     domain.UserRole `json:"role"`
}

// HandleRegister handles POST /v1/auth/register
func HandleRegister(repos *repository.Repositories, cfg config.AuthConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		authService := service.NewAuthService(repos, cfg, logger)
		user, token, err := authService.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, AuthResponse{
			Token: token,
			User:  profileOf(user),
		})
	}
}

// HandleLogin handles POST /v1/auth/login
func HandleLogin(repos *repository.Repositories, cfg config.AuthConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		authService := service.NewAuthService(repos, cfg, logger)
		user, token, err := authService.Login(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{
			Token: token,
			User:  profileOf(user),
		})
	}
}

// HandleMe handles GET /v1/me
func HandleMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, profileOf(user))
	}
}

func profileOf(user *domain.User) UserProfile {
	return UserProfile{
		ID:       user.ID.String(),
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	}
}
