package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lodgeworks/service-rentals/internal/domain"
)

// Success writes a 200 response with the payload under "data".
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the payload under "data".
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// Paginated writes a 200 response with items and paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data": items,
		"meta": gin.H{"total": total, "page": page, "limit": limit},
	})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Error maps a domain error to its HTTP status and writes the response.
func Error(c *gin.Context, err error) {
	var (
		validationErr   *domain.ValidationError
		notFoundErr     *domain.NotFoundError
		forbiddenErr    *domain.ForbiddenError
		invalidStateErr *domain.InvalidStateError
		availErr        *domain.AvailabilityConflictError
		conflictErr     *domain.ConflictError
		unavailableErr  *domain.UnavailableError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &forbiddenErr):
		c.JSON(http.StatusForbidden, gin.H{"error": forbiddenErr.Message})
	case errors.As(err, &invalidStateErr):
		c.JSON(http.StatusConflict, gin.H{
			"error": invalidStateErr.Error(),
			"from":  invalidStateErr.From,
			"to":    invalidStateErr.To,
		})
	case errors.As(err, &availErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     availErr.Error(),
			"check_in":  availErr.CheckIn,
			"check_out": availErr.CheckOut,
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Message})
	case errors.As(err, &unavailableErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
