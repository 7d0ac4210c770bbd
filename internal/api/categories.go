package api

import (
	"context"                             // Context for store calls
	"finance_tracker/internal/middleware" // Request-scoped logger
	"finance_tracker/internal/store"      // Category store
	"finance_tracker/internal/utils"      // Cache
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// CategoryRequest is used for both create and full replace
type CategoryRequest struct {
	Name     string `json:"name" binding:"required"` // Category name
	ParentID *uint  `json:"parent_id"`               // Optional parent, must be owned by the caller
}

// CreateCategoryHandler creates a category for the authenticated user
func CreateCategoryHandler(categories *store.CategoryStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		category, err := categories.Create(c.Request.Context(), user.ID, req.Name, req.ParentID)
		if err != nil {
			respondError(c, err, "Category creation")
			return
		}
		invalidate(c, cache, categoriesKey(user.ID))
		middleware.Logger(c).WithField("category_id", category.ID).Info("Category created")
		c.JSON(http.StatusCreated, newCategoryResponse(category))
	}
}

// ListCategoriesHandler returns the user's categories flat
func ListCategoriesHandler(categories *store.CategoryStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		serveCachedList(c, cache, categoriesKey(user.ID), "Category listing", func(ctx context.Context) ([]CategoryResponse, error) {
			list, err := categories.ListByOwner(ctx, user.ID)
			if err != nil {
				return nil, err
			}
			resp := make([]CategoryResponse, len(list))
			for i := range list {
				resp[i] = newCategoryResponse(&list[i])
			}
			return resp, nil
		})
	}
}

// CategoryTreeHandler returns the user's categories nested by parent
func CategoryTreeHandler(categories *store.CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		tree, err := categories.Tree(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err, "Category tree")
			return
		}
		c.JSON(http.StatusOK, newCategoryTree(tree))
	}
}

// GetCategoryHandler returns one category with its direct children
func GetCategoryHandler(categories *store.CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "Category")
		if !ok {
			return
		}
		category, err := categories.GetOwned(c.Request.Context(), id, user.ID)
		if err != nil {
			respondError(c, err, "Category lookup")
			return
		}
		c.JSON(http.StatusOK, newCategoryResponse(category))
	}
}

// UpdateCategoryHandler replaces a category's name and parent
func UpdateCategoryHandler(categories *store.CategoryStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "Category")
		if !ok {
			return
		}
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		category, err := categories.Update(c.Request.Context(), id, user.ID, req.Name, req.ParentID)
		if err != nil {
			respondError(c, err, "Category update")
			return
		}
		// Expense listings carry the category name
		invalidate(c, cache, categoriesKey(user.ID), expensesKey(user.ID))
		middleware.Logger(c).WithField("category_id", category.ID).Info("Category updated")
		c.JSON(http.StatusOK, newCategoryResponse(category))
	}
}

// DeleteCategoryHandler deletes a category that nothing references any more
func DeleteCategoryHandler(categories *store.CategoryStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "Category")
		if !ok {
			return
		}
		if err := categories.Delete(c.Request.Context(), id, user.ID); err != nil {
			respondError(c, err, "Category deletion")
			return
		}
		invalidate(c, cache, categoriesKey(user.ID))
		middleware.Logger(c).WithField("category_id", id).Info("Category deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}
