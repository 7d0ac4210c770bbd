package api

import (
	"finance_tracker/internal/domain"     // Role names
	"finance_tracker/internal/middleware" // Custom package for middleware
	"finance_tracker/internal/store"      // Stores
	"finance_tracker/internal/utils"      // Token service and cache
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps are the collaborators the HTTP surface is built from
type Deps struct {
	Users          *store.UserStore
	Categories     *store.CategoryStore
	Expenses       *store.ExpenseStore
	Budgets        *store.BudgetStore
	Tokens         *utils.TokenService
	Cache          *utils.Cache // May be disabled
	TrustedProxies []string
}

// NewRouter wires every route
func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, err
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Backend is running!"})
	})

	// Auth routes
	r.POST("/signup", RegisterHandler(d.Users, d.Cache)) // Registration endpoint
	r.POST("/login", LoginHandler(d.Users, d.Tokens))    // Login endpoint

	gate := middleware.NewGate(d.Tokens, d.Users)
	auth := middleware.JWTAuthMiddleware(gate)

	categories := r.Group("/categories", auth)
	categories.POST("", CreateCategoryHandler(d.Categories, d.Cache))
	categories.GET("", ListCategoriesHandler(d.Categories, d.Cache))
	categories.GET("/tree", CategoryTreeHandler(d.Categories))
	categories.GET("/:id", GetCategoryHandler(d.Categories))
	categories.PUT("/:id", UpdateCategoryHandler(d.Categories, d.Cache))
	categories.DELETE("/:id", DeleteCategoryHandler(d.Categories, d.Cache))

	expenses := r.Group("/expenses", auth)
	expenses.POST("", CreateExpenseHandler(d.Expenses, d.Cache))
	expenses.GET("", ListExpensesHandler(d.Expenses, d.Cache))
	expenses.GET("/:id", GetExpenseHandler(d.Expenses))
	expenses.PUT("/:id", UpdateExpenseHandler(d.Expenses, d.Cache))
	expenses.PATCH("/:id", UpdateExpenseHandler(d.Expenses, d.Cache))
	expenses.DELETE("/:id", DeleteExpenseHandler(d.Expenses, d.Cache))

	budgets := r.Group("/budgets", auth)
	budgets.POST("", CreateBudgetHandler(d.Budgets, d.Cache))
	budgets.GET("", ListBudgetsHandler(d.Budgets, d.Cache))
	budgets.GET("/:id", GetBudgetHandler(d.Budgets))
	budgets.PUT("/:id", UpdateBudgetHandler(d.Budgets, d.Cache))
	budgets.DELETE("/:id", DeleteBudgetHandler(d.Budgets, d.Cache))

	// Admin routes (protected, role gated)
	admin := r.Group("/admin", auth)
	admin.GET("/users", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), ListUsersHandler(d.Users, d.Cache))
	admin.GET("/categories", middleware.RequireRole(domain.RoleAdmin), ListAllCategoriesHandler(d.Categories))

	return r, nil
}
