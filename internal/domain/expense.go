package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxReceiptURLLength is the widest receipt reference the column holds
const MaxReceiptURLLength = 2048

// Expense Model
type Expense struct {
	ID          uint            `gorm:"primaryKey"`                  // Primary key
	UserID      uint            `gorm:"not null;index"`              // Foreign key to owning User
	User        *User           `gorm:"foreignKey:UserID"`           // Owning user
	CategoryID  uint            `gorm:"not null;index"`              // Foreign key to Category
	Category    *Category       `gorm:"foreignKey:CategoryID"`       // Category, preloaded for responses
	Name        string          `gorm:"size:255;not null"`           // Human readable name
	Amount      decimal.Decimal `gorm:"type:decimal(20,8);not null"` // Signed amount, currency-less
	Description *string                                              // Optional free text
	ReceiptURL  *string         `gorm:"size:2048"`                   // Optional receipt reference
	IsRecurring bool            `gorm:"not null;default:false"`      // Recurring flag
	Date        time.Time       `gorm:"not null"`                    // Transaction date
	CreatedAt   time.Time                                            // Creation timestamp
	UpdatedAt   time.Time                                            // Refreshed on every mutation
}

// ExpenseInput carries the fields for a new expense
type ExpenseInput struct {
	Name        string
	CategoryID  uint
	Amount      decimal.Decimal
	Description *string
	ReceiptURL  *string
	IsRecurring bool
	Date        *time.Time // Defaults to now (UTC) when nil
}

// ExpensePatch is a partial update: only fields with Set applied are written
type ExpensePatch struct {
	Name        Optional[string]          `json:"name"`
	CategoryID  Optional[uint]            `json:"category_id"`
	Amount      Optional[decimal.Decimal] `json:"amount"`
	Description Optional[string]          `json:"description"`
	ReceiptURL  Optional[string]          `json:"receipt_url"`
	IsRecurring Optional[bool]            `json:"is_recurring"`
	Date        Optional[time.Time]       `json:"date"`
}

// Empty reports whether the patch carries no fields at all
func (p ExpensePatch) Empty() bool {
	return !p.Name.Set && !p.CategoryID.Set && !p.Amount.Set && !p.Description.Set &&
		!p.ReceiptURL.Set && !p.IsRecurring.Set && !p.Date.Set
}
