package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lodgeworks/service-rentals/internal/application"
	"github.com/lodgeworks/service-rentals/internal/auth"
	"github.com/lodgeworks/service-rentals/internal/middleware"
	"github.com/lodgeworks/service-rentals/internal/response"
)

// PropertyHandler handles HTTP requests for listing operations.
type PropertyHandler struct {
	propertyService *application.PropertyService
	bookingService  *application.BookingService
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertyService *application.PropertyService, bookingService *application.BookingService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService, bookingService: bookingService}
}

// RegisterRoutes registers all property routes on the given router group.
// Browsing is public; mutation requires the host role.
func (h *PropertyHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	hostOnly := middleware.RequireRole(auth.RoleHost)

	properties := r.Group("/api/v1/properties")
	{
		properties.GET("", h.ListProperties)
		properties.GET("/:id", h.GetProperty)
		properties.GET("/:id/availability", h.CheckAvailability)

		properties.POST("", authMW, hostOnly, h.CreateProperty)
		properties.PUT("/:id", authMW, hostOnly, h.UpdateProperty)
		properties.DELETE("/:id", authMW, hostOnly, h.DeleteProperty)
	}

	host := r.Group("/api/v1/host")
	host.Use(authMW, hostOnly)
	{
		host.GET("/properties", h.ListOwnProperties)
	}
}

// ListProperties handles GET /api/v1/properties with filter query params.
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	page, limit := parsePagination(c)

	var amenities []string
	if raw := c.Query("amenities"); raw != "" {
		amenities = strings.Split(raw, ",")
	}

	query := application.ListPropertiesQuery{
		Location:     c.Query("location"),
		MinPrice:     c.Query("min_price"),
		MaxPrice:     c.Query("max_price"),
		PropertyType: c.Query("property_type"),
		Amenities:    amenities,
		Page:         page,
		Limit:        limit,
	}

	result, err := h.propertyService.ListProperties(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetProperty handles GET /api/v1/properties/:id.
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	result, err := h.propertyService.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CheckAvailability handles GET /api/v1/properties/:id/availability.
func (h *PropertyHandler) CheckAvailability(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	checkIn := c.Query("check_in")
	checkOut := c.Query("check_out")
	if checkIn == "" || checkOut == "" {
		response.BadRequest(c, "check_in and check_out are required")
		return
	}

	available, err := h.bookingService.CheckAvailability(c.Request.Context(), propertyID, checkIn, checkOut)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"available": available})
}

// CreateProperty handles POST /api/v1/properties.
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.propertyService.CreateProperty(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateProperty handles PUT /api/v1/properties/:id.
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.propertyService.UpdateProperty(c.Request.Context(), propertyID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteProperty handles DELETE /api/v1/properties/:id.
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), propertyID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// ListOwnProperties handles GET /api/v1/host/properties.
func (h *PropertyHandler) ListOwnProperties(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.propertyService.GetHostProperties(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
