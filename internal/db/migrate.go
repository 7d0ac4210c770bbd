package db

import (
	"finance_tracker/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err := db.AutoMigrate(&domain.Role{}, &domain.User{}, &domain.Category{}, &domain.Expense{}, &domain.Budget{})
	if err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
