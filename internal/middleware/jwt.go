package middleware

import (
	"context"                         // Context for user lookups
	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/utils"  // Token service
	"net/http"                        // HTTP status codes
	"strings"                         // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// UserKey is the gin context key holding the authenticated *domain.User
const UserKey = "user"

// UserLookup resolves a token subject to a user; nil means no such user
type UserLookup interface {
	LookupByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Gate resolves bearer credentials to live users
type Gate struct {
	tokens *utils.TokenService
	users  UserLookup
}

// NewGate creates an authorization gate
func NewGate(tokens *utils.TokenService, users UserLookup) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Resolve verifies token and loads its subject.
// Bad signature, expiry, malformed input and a vanished user all return domain.ErrAuthentication.
func (g *Gate) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrAuthentication
	}
	user, err := g.users.LookupByEmail(ctx, claims.Subject)
	if err != nil {
		// Store failures still fail closed
		logrus.WithError(err).Error("Failed to resolve token subject")
		return nil, domain.ErrAuthentication
	}
	if user == nil {
		return nil, domain.ErrAuthentication
	}
	return user, nil
}

// JWTAuthMiddleware validates bearer tokens and stores the resolved user in the context
func JWTAuthMiddleware(gate *Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		token, ok := bearerToken(authHeader)
		var user *domain.User
		var err error = domain.ErrAuthentication
		if ok {
			user, err = gate.Resolve(c.Request.Context(), token)
		}
		if err != nil {
			// One response for every failure cause
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "code": "authentication"})
			return
		}
		c.Set(UserKey, user) // Store user in context
		c.Next()             // Proceed to the next handler
	}
}

// CurrentUser returns the user stored by JWTAuthMiddleware
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
