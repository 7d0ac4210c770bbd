package api

import (
	"finance_tracker/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

// UserResponse is the public user summary
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// CategoryResponse is a category with optional nested children
type CategoryResponse struct {
	ID       uint               `json:"id"`
	Name     string             `json:"name"`
	ParentID *uint              `json:"parent_id"`
	Children []CategoryResponse `json:"children"`
}

// ExpenseResponse is the public expense projection
type ExpenseResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	Description  *string         `json:"description"`
	ReceiptURL   *string         `json:"receipt_url"`
	IsRecurring  bool            `json:"is_recurring"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BudgetResponse is the public budget projection
type BudgetResponse struct {
	ID          uint            `json:"id"`
	CategoryID  uint            `json:"category_id"`
	AmountLimit decimal.Decimal `json:"amount_limit"`
	TimePeriod  string          `json:"time_period"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role.Name)}
}

func newCategoryResponse(c *domain.Category) CategoryResponse {
	resp := CategoryResponse{ID: c.ID, Name: c.Name, ParentID: c.ParentID, Children: []CategoryResponse{}}
	for i := range c.Children {
		resp.Children = append(resp.Children, newCategoryResponse(&c.Children[i]))
	}
	return resp
}

func newCategoryTree(nodes []*domain.CategoryNode) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(nodes))
	for _, n := range nodes {
		resp := CategoryResponse{ID: n.ID, Name: n.Name, ParentID: n.ParentID}
		resp.Children = newCategoryTree(n.Nodes)
		out = append(out, resp)
	}
	return out
}

func newExpenseResponse(e *domain.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          e.ID,
		Name:        e.Name,
		CategoryID:  e.CategoryID,
		Amount:      e.Amount,
		Description: e.Description,
		ReceiptURL:  e.ReceiptURL,
		IsRecurring: e.IsRecurring,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.Category != nil {
		resp.CategoryName = e.Category.Name
	}
	return resp
}

func newBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{ID: b.ID, CategoryID: b.CategoryID, AmountLimit: b.AmountLimit, TimePeriod: b.TimePeriod}
}
