package api

import (
	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/middleware" // Request-scoped logger
	"finance_tracker/internal/store"      // Identity store
	"finance_tracker/internal/utils"      // Token service
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`        // Display name
	Email    string `json:"email" binding:"required,email"` // Unique email
	Password string `json:"password" binding:"required"`    // Plaintext password, 8 to 72 bytes, hashed before storage
	Role     string `json:"role"`                           // Optional role name, defaults to user
}

// LoginRequest is the credential payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Account email
	Password string `json:"password" binding:"required"` // Account password
}

// RegisterHandler creates a user and returns its summary
func RegisterHandler(users *store.UserStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		user, err := users.CreateUser(c.Request.Context(), req.Name, req.Email, req.Password, domain.RoleName(req.Role))
		if err != nil {
			respondError(c, err, "Registration")
			return
		}
		invalidate(c, cache, adminUsersKey)
		// Log successful registration
		middleware.Logger(c).WithFields(logrus.Fields{
			"new_user_id": user.ID,        // Created user
			"role":        user.Role.Name, // Resolved role
		}).Info("User registered")
		c.JSON(http.StatusCreated, newUserResponse(user))
	}
}

// LoginHandler authenticates a user and returns a signed bearer token.
// Unknown email and wrong password produce the same response.
func LoginHandler(users *store.UserStore, tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		user, err := users.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err, "Login")
			return
		}
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "code": "authentication"})
			return
		}
		token, expiresAt, err := tokens.Issue(user.Email) // Subject is the email
		if err != nil {
			respondError(c, err, "Token generation")
			return
		}
		c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer", ExpiresAt: expiresAt.UTC()})
	}
}
