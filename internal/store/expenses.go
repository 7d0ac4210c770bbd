package store

import (
	"context"
	"fmt"
	"time"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
)

// ExpenseStore owns expense records
type ExpenseStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewExpenseStore creates an ExpenseStore
func NewExpenseStore(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create records an expense for ownerID in one of the owner's categories
func (s *ExpenseStore) Create(ctx context.Context, ownerID uint, in domain.ExpenseInput) (*domain.Expense, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	if in.ReceiptURL != nil {
		if err := checkLength("receipt_url", *in.ReceiptURL, domain.MaxReceiptURLLength); err != nil {
			return nil, err
		}
	}
	if in.CategoryID == 0 {
		return nil, fmt.Errorf("%w: category_id is required", domain.ErrValidation)
	}
	date := s.now()
	if in.Date != nil {
		date = in.Date.UTC()
	}
	expense := domain.Expense{
		UserID:      ownerID,
		CategoryID:  in.CategoryID,
		Name:        name,
		Amount:      in.Amount,
		Description: in.Description,
		ReceiptURL:  in.ReceiptURL,
		IsRecurring: in.IsRecurring,
		Date:        date,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireOwnedCategory(tx, in.CategoryID, ownerID); err != nil {
			return err
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		return tx.Preload("Category").First(&expense, expense.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListByOwner returns all of the owner's expenses
func (s *ExpenseStore) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Expense, error) {
	var expenses []domain.Expense
	err := s.db.WithContext(ctx).Preload("Category").Where("user_id = ?", ownerID).Order("id").Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// GetOwned returns one expense, or ErrNotFound when absent or owned by someone else
func (s *ExpenseStore) GetOwned(ctx context.Context, id, ownerID uint) (*domain.Expense, error) {
	return getOwnedExpense(s.db.WithContext(ctx), id, ownerID)
}

// Update applies a partial update: fields absent from patch keep their stored value.
// updated_at is refreshed whenever at least one field is written.
func (s *ExpenseStore) Update(ctx context.Context, id, ownerID uint, patch domain.ExpensePatch) (*domain.Expense, error) {
	var expense *domain.Expense
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if expense, err = getOwnedExpense(tx, id, ownerID); err != nil {
			return err
		}
		if patch.Empty() {
			return nil
		}
		updates, err := expenseUpdates(tx, ownerID, patch)
		if err != nil {
			return err
		}
		updates["updated_at"] = s.now()
		if err := tx.Model(&domain.Expense{}).Where("id = ? AND user_id = ?", id, ownerID).Updates(updates).Error; err != nil {
			return err
		}
		expense, err = getOwnedExpense(tx, id, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// Delete removes an expense and reports whether anything matched
func (s *ExpenseStore) Delete(ctx context.Context, id, ownerID uint) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&domain.Expense{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func getOwnedExpense(db *gorm.DB, id, ownerID uint) (*domain.Expense, error) {
	var expense domain.Expense
	err := db.Preload("Category").Where("id = ? AND user_id = ?", id, ownerID).First(&expense).Error
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: expense not found", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// expenseUpdates converts the present patch fields into column updates
func expenseUpdates(tx *gorm.DB, ownerID uint, p domain.ExpensePatch) (map[string]any, error) {
	updates := make(map[string]any)
	notNull := func(field string, set, null bool) error {
		if set && null {
			return fmt.Errorf("%w: %s cannot be null", domain.ErrValidation, field)
		}
		return nil
	}
	for _, check := range []error{
		notNull("name", p.Name.Set, p.Name.Null),
		notNull("category_id", p.CategoryID.Set, p.CategoryID.Null),
		notNull("amount", p.Amount.Set, p.Amount.Null),
		notNull("is_recurring", p.IsRecurring.Set, p.IsRecurring.Null),
		notNull("date", p.Date.Set, p.Date.Null),
	} {
		if check != nil {
			return nil, check
		}
	}

	if p.Name.Set {
		name, err := requireName(p.Name.Value)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if p.CategoryID.Set {
		if err := requireOwnedCategory(tx, p.CategoryID.Value, ownerID); err != nil {
			return nil, err
		}
		updates["category_id"] = p.CategoryID.Value
	}
	if p.Amount.Set {
		updates["amount"] = p.Amount.Value
	}
	if p.Description.Set {
		updates["description"] = nullableString(p.Description)
	}
	if p.ReceiptURL.Set {
		if err := checkLength("receipt_url", p.ReceiptURL.Value, domain.MaxReceiptURLLength); err != nil {
			return nil, err
		}
		updates["receipt_url"] = nullableString(p.ReceiptURL)
	}
	if p.IsRecurring.Set {
		updates["is_recurring"] = p.IsRecurring.Value
	}
	if p.Date.Set {
		updates["date"] = p.Date.Value.UTC()
	}
	return updates, nil
}

func nullableString(o domain.Optional[string]) any {
	if o.Null {
		return nil
	}
	return o.Value
}
