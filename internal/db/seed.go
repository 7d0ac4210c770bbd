package db

import (
	"finance_tracker/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedRoles inserts every known role that is missing. Safe to run on every start,
// including from several processes at once.
func SeedRoles(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range domain.AllRoles {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&domain.Role{Name: name})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				logrus.WithField("role", name).Info("Seeded role")
			}
		}
		return nil
	})
}

// Bootstrap prepares the schema (when migrate is true) and seeds roles.
// It must complete before the server accepts requests.
func Bootstrap(db *gorm.DB, migrate bool) error {
	if migrate {
		if err := Migrate(db); err != nil {
			return err
		}
	}
	return SeedRoles(db)
}
