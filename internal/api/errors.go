package api

import (
	"errors"                              // Error classification
	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/middleware" // Request-scoped logger
	"net/http"                            // HTTP status codes
	"strconv"                             // Path id parsing
	"strings"                             // Message trimming

	"github.com/gin-gonic/gin" // Gin web framework
)

// errorClass maps a domain sentinel to its transport status and category
type errorClass struct {
	sentinel error
	status   int
	code     string
}

var errorClasses = []errorClass{
	{domain.ErrValidation, http.StatusBadRequest, "validation"},
	{domain.ErrConflict, http.StatusConflict, "conflict"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrAuthentication, http.StatusUnauthorized, "authentication"},
}

// respondError translates a store error into a structured response.
// Unclassified errors are logged and reported as a generic internal error.
func respondError(c *gin.Context, err error, action string) {
	for _, class := range errorClasses {
		if errors.Is(err, class.sentinel) {
			c.JSON(class.status, gin.H{"error": detail(err, class.sentinel), "code": class.code})
			return
		}
	}
	middleware.Logger(c).WithError(err).Error(action + " failed") // Log unexpected failure
	c.JSON(http.StatusInternalServerError, gin.H{"error": action + " failed", "code": "internal"})
}

// detail strips the sentinel prefix from a wrapped error message
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

// badRequest answers a payload that could not be bound
func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "code": "validation"})
}

// notFound answers with the same body a missing or foreign resource would produce
func notFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, gin.H{"error": strings.ToLower(resource) + " not found", "code": "not_found"})
}

// pathID parses the :id parameter; malformed ids are reported as not found
func pathID(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		notFound(c, resource)
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the authenticated user; the JWT middleware guarantees presence
func currentUser(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "code": "authentication"})
	}
	return user, ok
}
