package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/studyplan-backend/internal/domain/wellbeing"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(wellbeing.Models()...); err != nil {
		return fmt.Errorf("automigrate wellbeing: %w", err)
	}
	return nil
}
