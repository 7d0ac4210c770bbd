package api

import (
	"context"                             // Context for store calls
	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/middleware" // Request-scoped logger
	"finance_tracker/internal/store"      // Expense store
	"finance_tracker/internal/utils"      // Cache
	"net/http"                            // HTTP status codes
	"time"                                // Expense dates

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal amounts
)

// ExpenseRequest is the create payload
type ExpenseRequest struct {
	Name        string           `json:"name" binding:"required"`        // Human readable name
	CategoryID  uint             `json:"category_id" binding:"required"` // Owned category
	Amount      *decimal.Decimal `json:"amount" binding:"required"`      // Signed amount
	Description *string          `json:"description"`                    // Optional free text
	ReceiptURL  *string          `json:"receipt_url"`                    // Optional receipt reference
	IsRecurring bool             `json:"is_recurring"`                   // Defaults to false
	Date        *time.Time       `json:"date"`                           // Defaults to now
}

// CreateExpenseHandler records an expense for the authenticated user
func CreateExpenseHandler(expenses *store.ExpenseStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var req ExpenseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		expense, err := expenses.Create(c.Request.Context(), user.ID, domain.ExpenseInput{
			Name:        req.Name,
			CategoryID:  req.CategoryID,
			Amount:      *req.Amount,
			Description: req.Description,
			ReceiptURL:  req.ReceiptURL,
			IsRecurring: req.IsRecurring,
			Date:        req.Date,
		})
		if err != nil {
			respondError(c, err, "Expense creation")
			return
		}
		invalidate(c, cache, expensesKey(user.ID))
		middleware.Logger(c).WithField("expense_id", expense.ID).Info("Expense created")
		c.JSON(http.StatusCreated, newExpenseResponse(expense))
	}
}

// ListExpensesHandler returns all of the user's expenses
func ListExpensesHandler(expenses *store.ExpenseStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		serveCachedList(c, cache, expensesKey(user.ID), "Expense listing", func(ctx context.Context) ([]ExpenseResponse, error) {
			list, err := expenses.ListByOwner(ctx, user.ID)
			if err != nil {
				return nil, err
			}
			resp := make([]ExpenseResponse, len(list))
			for i := range list {
				resp[i] = newExpenseResponse(&list[i])
			}
			return resp, nil
		})
	}
}

// GetExpenseHandler returns one expense
func GetExpenseHandler(expenses *store.ExpenseStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "Expense")
		if !ok {
			return
		}
		expense, err := expenses.GetOwned(c.Request.Context(), id, user.ID)
		if err != nil {
			respondError(c, err, "Expense lookup")
			return
		}
		c.JSON(http.StatusOK, newExpenseResponse(expense))
	}
}

// UpdateExpenseHandler applies a partial update; keys missing from the body are left unchanged
func UpdateExpenseHandler(expenses *store.ExpenseStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "Expense")
		if !ok {
			return
		}
		var patch domain.ExpensePatch // Bind JSON request, recording which keys were present
		if err := c.ShouldBindJSON(&patch); err != nil {
			badRequest(c)
			return
		}
		expense, err := expenses.Update(c.Request.Context(), id, user.ID, patch)
		if err != nil {
			respondError(c, err, "Expense update")
			return
		}
		invalidate(c, cache, expensesKey(user.ID))
		middleware.Logger(c).WithField("expense_id", expense.ID).Info("Expense updated")
		c.JSON(http.StatusOK, newExpenseResponse(expense))
	}
}

// DeleteExpenseHandler deletes one expense
func DeleteExpenseHandler(expenses *store.ExpenseStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "Expense")
		if !ok {
			return
		}
		deleted, err := expenses.Delete(c.Request.Context(), id, user.ID)
		if err != nil {
			respondError(c, err, "Expense deletion")
			return
		}
		if !deleted {
			notFound(c, "Expense")
			return
		}
		invalidate(c, cache, expensesKey(user.ID))
		middleware.Logger(c).WithField("expense_id", id).Info("Expense deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
	}
}
