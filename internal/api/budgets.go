package api

import (
	"context"                             // Context for store calls
	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/middleware" // Request-scoped logger
	"finance_tracker/internal/store"      // Budget store
	"finance_tracker/internal/utils"      // Cache
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal amounts
)

// BudgetRequest is the complete budget payload, used for create and full replace
type BudgetRequest struct {
	CategoryID  uint             `json:"category_id" binding:"required"`  // Owned category
	AmountLimit *decimal.Decimal `json:"amount_limit" binding:"required"` // Spending ceiling
	TimePeriod  string           `json:"time_period" binding:"required"`  // Opaque period token
}

func (r BudgetRequest) input() domain.BudgetInput {
	return domain.BudgetInput{CategoryID: r.CategoryID, AmountLimit: *r.AmountLimit, TimePeriod: r.TimePeriod}
}

// CreateBudgetHandler creates a budget for the authenticated user
func CreateBudgetHandler(budgets *store.BudgetStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var req BudgetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		budget, err := budgets.Create(c.Request.Context(), user.ID, req.input())
		if err != nil {
			respondError(c, err, "Budget creation")
			return
		}
		invalidate(c, cache, budgetsKey(user.ID))
		middleware.Logger(c).WithField("budget_id", budget.ID).Info("Budget created")
		c.JSON(http.StatusCreated, newBudgetResponse(budget))
	}
}

// ListBudgetsHandler returns all of the user's budgets
func ListBudgetsHandler(budgets *store.BudgetStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		serveCachedList(c, cache, budgetsKey(user.ID), "Budget listing", func(ctx context.Context) ([]BudgetResponse, error) {
			list, err := budgets.ListByOwner(ctx, user.ID)
			if err != nil {
				return nil, err
			}
			resp := make([]BudgetResponse, len(list))
			for i := range list {
				resp[i] = newBudgetResponse(&list[i])
			}
			return resp, nil
		})
	}
}

// GetBudgetHandler returns one budget
func GetBudgetHandler(budgets *store.BudgetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "Budget")
		if !ok {
			return
		}
		budget, err := budgets.GetOwned(c.Request.Context(), id, user.ID)
		if err != nil {
			respondError(c, err, "Budget lookup")
			return
		}
		c.JSON(http.StatusOK, newBudgetResponse(budget))
	}
}

// UpdateBudgetHandler overwrites a budget with the full payload
func UpdateBudgetHandler(budgets *store.BudgetStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "Budget")
		if !ok {
			return
		}
		var req BudgetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		budget, err := budgets.Update(c.Request.Context(), id, user.ID, req.input())
		if err != nil {
			respondError(c, err, "Budget update")
			return
		}
		invalidate(c, cache, budgetsKey(user.ID))
		middleware.Logger(c).WithField("budget_id", budget.ID).Info("Budget updated")
		c.JSON(http.StatusOK, newBudgetResponse(budget))
	}
}

// DeleteBudgetHandler deletes one budget
func DeleteBudgetHandler(budgets *store.BudgetStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "Budget")
		if !ok {
			return
		}
		deleted, err := budgets.Delete(c.Request.Context(), id, user.ID)
		if err != nil {
			respondError(c, err, "Budget deletion")
			return
		}
		if !deleted {
			notFound(c, "Budget")
			return
		}
		invalidate(c, cache, budgetsKey(user.ID))
		middleware.Logger(c).WithField("budget_id", id).Info("Budget deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
	}
}
