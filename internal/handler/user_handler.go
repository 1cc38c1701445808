package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lodgeworks/service-rentals/internal/application"
	"github.com/lodgeworks/service-rentals/internal/auth"
	"github.com/lodgeworks/service-rentals/internal/middleware"
	"github.com/lodgeworks/service-rentals/internal/response"
)

// UserHandler handles HTTP requests for account operations.
type UserHandler struct {
	service *application.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers all account routes on the given router group.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	users := r.Group("/api/v1/users")
	{
		users.POST("/signin", h.SignIn)
		users.GET("/me", authMW, h.GetProfile)
		users.PUT("/me/role", authMW, h.SetRole)
	}
}

// SignIn handles POST /api/v1/users/signin. The request body carries the
// identity assertion already verified by the identity-provider boundary.
func (h *UserHandler) SignIn(c *gin.Context) {
	var req application.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetProfile handles GET /api/v1/users/me.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SetRole handles PUT /api/v1/users/me/role, the one-time role selection.
func (h *UserHandler) SetRole(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SetRole(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
