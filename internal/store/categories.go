package store

import (
	"context"
	"errors"
	"fmt"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
)

// CategoryStore owns the per-user category hierarchy
type CategoryStore struct {
	db *gorm.DB
}

// NewCategoryStore creates a CategoryStore
func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// Create adds a category for ownerID, optionally under parentID.
// The parent must exist and belong to the same owner.
func (s *CategoryStore) Create(ctx context.Context, ownerID uint, name string, parentID *uint) (*domain.Category, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	category := domain.Category{Name: name, OwnerID: ownerID, ParentID: parentID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if parentID != nil {
			if err := requireOwnedParent(tx, *parentID, ownerID); err != nil {
				return err
			}
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListByOwner returns the owner's categories flat, children not populated
func (s *CategoryStore) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Category, error) {
	var categories []domain.Category
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetOwned returns one category with its direct children, or ErrNotFound
func (s *CategoryStore) GetOwned(ctx context.Context, id, ownerID uint) (*domain.Category, error) {
	var category domain.Category
	err := s.db.WithContext(ctx).
		Preload("Children", func(db *gorm.DB) *gorm.DB { return db.Where("owner_id = ?", ownerID).Order("id") }).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&category).Error
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: category not found", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Tree returns the owner's categories nested by parent
func (s *CategoryStore) Tree(ctx context.Context, ownerID uint) ([]*domain.CategoryNode, error) {
	categories, err := s.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return domain.BuildTree(categories), nil
}

// Update replaces name and parent. Re-parenting under itself or a descendant is rejected.
func (s *CategoryStore) Update(ctx context.Context, id, ownerID uint, name string, parentID *uint) (*domain.Category, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	var category domain.Category
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&category).Error; err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: category not found", domain.ErrNotFound)
			}
			return err
		}
		updates := map[string]any{"name": name, "parent_id": nil}
		if parentID != nil {
			if err := requireOwnedParent(tx, *parentID, ownerID); err != nil {
				return err
			}
			parents, err := parentIndex(tx, ownerID)
			if err != nil {
				return err
			}
			if domain.WouldCycle(parents, id, *parentID) {
				return fmt.Errorf("%w: parent would create a cycle", domain.ErrValidation)
			}
			updates["parent_id"] = *parentID
		}
		if err := tx.Model(&domain.Category{}).Where("id = ? AND owner_id = ?", id, ownerID).Updates(updates).Error; err != nil {
			return err
		}
		var fresh domain.Category
		if err := tx.First(&fresh, id).Error; err != nil {
			return err
		}
		category = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category. Categories still referenced by children, expenses or budgets are kept.
func (s *CategoryStore) Delete(ctx context.Context, id, ownerID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category domain.Category
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&category).Error; err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: category not found", domain.ErrNotFound)
			}
			return err
		}
		dependents := []struct {
			model any
			query string
			what  string
		}{
			{&domain.Category{}, "parent_id = ?", "subcategories"},
			{&domain.Expense{}, "category_id = ?", "expenses"},
			{&domain.Budget{}, "category_id = ?", "budgets"},
		}
		for _, d := range dependents {
			var n int64
			if err := tx.Model(d.model).Where(d.query, id).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%w: category still has %s", domain.ErrConflict, d.what)
			}
		}
		return tx.Delete(&category).Error
	})
}

// ListAll returns every category of every user
func (s *CategoryStore) ListAll(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// requireOwnedParent fails with ErrValidation when the parent is missing or foreign
func requireOwnedParent(tx *gorm.DB, parentID, ownerID uint) error {
	err := requireOwnedCategory(tx, parentID, ownerID)
	if errors.Is(err, domain.ErrValidation) {
		return fmt.Errorf("%w: parent category not found", domain.ErrValidation)
	}
	return err
}

// requireOwnedCategory fails with ErrValidation when the category is missing or foreign
func requireOwnedCategory(tx *gorm.DB, categoryID, ownerID uint) error {
	var n int64
	if err := tx.Model(&domain.Category{}).Where("id = ? AND owner_id = ?", categoryID, ownerID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: category not found", domain.ErrValidation)
	}
	return nil
}

func parentIndex(tx *gorm.DB, ownerID uint) (map[uint]*uint, error) {
	var rows []domain.Category
	if err := tx.Select("id", "parent_id").Where("owner_id = ?", ownerID).Find(&rows).Error; err != nil {
		return nil, err
	}
	parents := make(map[uint]*uint, len(rows))
	for _, r := range rows {
		parents[r.ID] = r.ParentID
	}
	return parents, nil
}
