package store

import (
	"context"
	"errors"
	"fmt"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/utils"

	"gorm.io/gorm"
)

// UserStore is the identity and credential store
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a UserStore
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// LookupByEmail returns the user with exactly this email, or nil
func (s *UserStore) LookupByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&user).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// LookupByID returns the user with this id, or nil
func (s *UserStore) LookupByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Preload("Role").First(&user, id).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser registers a new user bound to roleName. Only the password hash is stored.
func (s *UserStore) CreateUser(ctx context.Context, name, email, password string, roleName domain.RoleName) (*domain.User, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	if err := checkLength("email", email, domain.MaxEmailLength); err != nil {
		return nil, err
	}
	if n := len(password); n < domain.MinPasswordBytes || n > domain.MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be %d to %d bytes", domain.ErrValidation, domain.MinPasswordBytes, domain.MaxPasswordBytes)
	}
	if roleName == "" {
		roleName = domain.RoleUser
	}
	if !roleName.Valid() {
		return nil, fmt.Errorf("%w: role '%s' not found", domain.ErrValidation, roleName)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user domain.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&domain.User{}).Where("email = ?", email).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		var role domain.Role
		if err := tx.Where("name = ?", roleName).First(&role).Error; err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: role '%s' not found", domain.ErrValidation, roleName)
			}
			return err
		}
		user = domain.User{Name: name, Email: email, PasswordHash: hash, RoleID: role.ID, Role: role}
		// Role is already persisted; only the foreign key is written
		if err := tx.Omit("Role").Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: email already registered", domain.ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate returns the user only if email exists and password verifies.
// A missing user and a wrong password both yield (nil, nil).
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.LookupByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		utils.BurnPasswordCheck(password)
		return nil, nil
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, nil
	}
	return user, nil
}

// ListUsers returns every user with its role, ordered by id
func (s *UserStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.db.WithContext(ctx).Preload("Role").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
