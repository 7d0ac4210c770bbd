package api

import (
	"context"                        // Context for store calls
	"finance_tracker/internal/store" // Stores
	"finance_tracker/internal/utils" // Cache
	"net/http"                       // HTTP status codes
	"time"                           // Timestamp formatting

	"github.com/gin-gonic/gin" // Gin web framework
)

// adminUsersKey caches the admin user listing; registration invalidates it
const adminUsersKey = "admin:users"

// UserAdminResponse represents the user data returned to admins
type UserAdminResponse struct {
	UserResponse
	CreatedAt string `json:"created_at"` // RFC 3339 creation time
}

// ListUsersHandler returns every user with its role
func ListUsersHandler(users *store.UserStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		serveCachedList(c, cache, adminUsersKey, "User listing", func(ctx context.Context) ([]UserAdminResponse, error) {
			list, err := users.ListUsers(ctx)
			if err != nil {
				return nil, err
			}
			resp := make([]UserAdminResponse, len(list)) // Map users to response format
			for i := range list {
				resp[i] = UserAdminResponse{
					UserResponse: newUserResponse(&list[i]),
					CreatedAt:    list[i].CreatedAt.UTC().Format(time.RFC3339),
				}
			}
			return resp, nil
		})
	}
}

// ListAllCategoriesHandler returns the categories of every user
func ListAllCategoriesHandler(categories *store.CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := categories.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err, "Category listing")
			return
		}
		type adminCategory struct {
			CategoryResponse
			OwnerID uint `json:"owner_id"`
		}
		resp := make([]adminCategory, len(list))
		for i := range list {
			resp[i] = adminCategory{CategoryResponse: newCategoryResponse(&list[i]), OwnerID: list[i].OwnerID}
		}
		c.JSON(http.StatusOK, resp)
	}
}
