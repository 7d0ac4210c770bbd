package domain

import "github.com/shopspring/decimal"

// MaxTimePeriodLength is the widest time_period token the column holds
const MaxTimePeriodLength = 32

// Budget Model
type Budget struct {
	ID          uint            `gorm:"primaryKey"`                  // Primary key
	UserID      uint            `gorm:"not null;index"`              // Foreign key to owning User
	User        *User           `gorm:"foreignKey:UserID"`           // Owning user
	CategoryID  uint            `gorm:"not null;index"`              // Foreign key to Category
	Category    *Category       `gorm:"foreignKey:CategoryID"`       // Budgeted category
	AmountLimit decimal.Decimal `gorm:"type:decimal(20,8);not null"` // Spending ceiling
	TimePeriod  string          `gorm:"size:32;not null"`            // Opaque period token, e.g. "2025-06"
}

// BudgetInput is the full set of writable budget fields, used for create and replace
type BudgetInput struct {
	CategoryID  uint
	AmountLimit decimal.Decimal
	TimePeriod  string
}
