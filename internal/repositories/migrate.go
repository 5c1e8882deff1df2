package repositories

import (
	"github.com/anonto42/birdie/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the relational tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Comment{},
		&models.Notification{},
	)
}
