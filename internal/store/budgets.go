package store

import (
	"context"
	"fmt"
	"strings"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
)

// BudgetStore owns per-category, per-period spending limits
type BudgetStore struct {
	db *gorm.DB
}

// NewBudgetStore creates a BudgetStore
func NewBudgetStore(db *gorm.DB) *BudgetStore {
	return &BudgetStore{db: db}
}

// Create adds a budget. Duplicates for the same category and period are allowed.
func (s *BudgetStore) Create(ctx context.Context, ownerID uint, in domain.BudgetInput) (*domain.Budget, error) {
	if err := validateBudget(in); err != nil {
		return nil, err
	}
	budget := domain.Budget{
		UserID:      ownerID,
		CategoryID:  in.CategoryID,
		AmountLimit: in.AmountLimit,
		TimePeriod:  in.TimePeriod,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireOwnedCategory(tx, in.CategoryID, ownerID); err != nil {
			return err
		}
		return tx.Create(&budget).Error
	})
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// ListByOwner returns all of the owner's budgets
func (s *BudgetStore) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Budget, error) {
	var budgets []domain.Budget
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id").Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

// GetOwned returns one budget, or ErrNotFound when absent or owned by someone else
func (s *BudgetStore) GetOwned(ctx context.Context, id, ownerID uint) (*domain.Budget, error) {
	return getOwnedBudget(s.db.WithContext(ctx), id, ownerID)
}

// Update overwrites every writable field with the values in in
func (s *BudgetStore) Update(ctx context.Context, id, ownerID uint, in domain.BudgetInput) (*domain.Budget, error) {
	if err := validateBudget(in); err != nil {
		return nil, err
	}
	var budget *domain.Budget
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if budget, err = getOwnedBudget(tx, id, ownerID); err != nil {
			return err
		}
		if err := requireOwnedCategory(tx, in.CategoryID, ownerID); err != nil {
			return err
		}
		budget.CategoryID = in.CategoryID
		budget.AmountLimit = in.AmountLimit
		budget.TimePeriod = in.TimePeriod
		// Selected columns are written even when zero
		return tx.Model(budget).Select("category_id", "amount_limit", "time_period").Updates(budget).Error
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// Delete removes a budget and reports whether anything matched
func (s *BudgetStore) Delete(ctx context.Context, id, ownerID uint) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&domain.Budget{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func getOwnedBudget(db *gorm.DB, id, ownerID uint) (*domain.Budget, error) {
	var budget domain.Budget
	err := db.Where("id = ? AND user_id = ?", id, ownerID).First(&budget).Error
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: budget not found", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func validateBudget(in domain.BudgetInput) error {
	if in.CategoryID == 0 {
		return fmt.Errorf("%w: category_id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.TimePeriod) == "" {
		return fmt.Errorf("%w: time_period is required", domain.ErrValidation)
	}
	return checkLength("time_period", in.TimePeriod, domain.MaxTimePeriodLength)
}
