// internal/database/seed.go
package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gurukulpustakalaya/backend/internal/models"
)

// SeedInitialData creates the default administrator account and the default
// category set on first boot. Existing rows are never touched.
func SeedInitialData(db *gorm.DB) error {
	logrus.Info("Seeding initial data...")

	var adminCount int64
	db.Model(&models.Profile{}).Where("role = ?", models.UserRoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Username: "admin",
			Email:    "admin@gurukulpustakalaya.com",
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		err := WithTransaction(db, func(tx *gorm.DB) error {
			if err := tx.Create(admin).Error; err != nil {
				return err
			}
			profile := &models.Profile{
				UserID:     admin.ID,
				FullName:   "System Administrator",
				Role:       models.UserRoleAdmin,
				IsVerified: true,
			}
			return tx.Create(profile).Error
		})
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logrus.Info("Default admin user created")
	}

	defaultCategories := []models.Category{
		{Name: "Computer Science", Description: "Programming, algorithms, and IT", Icon: models.IconCode},
		{Name: "Science", Description: "Physics, chemistry, and biology", Icon: models.IconMicroscope},
		{Name: "Mathematics", Description: "Pure and applied mathematics", Icon: models.IconCalculator},
		{Name: "Arts", Description: "Fine arts and design", Icon: models.IconPalette},
		{Name: "Social Studies", Description: "History, geography, and civics", Icon: models.IconGlobe},
		{Name: "Entrance Preparation", Description: "Entrance exam guides and past papers", Icon: models.IconGraduationCap},
		{Name: "Literature", Description: "Novels, poetry, and essays", Icon: models.IconBookOpen},
		{Name: "Notes & Past Papers", Description: "Class notes and old question sets", Icon: models.IconFileText},
	}

	for _, category := range defaultCategories {
		var count int64
		db.Model(&models.Category{}).Where("name = ?", category.Name).Count(&count)

		if count == 0 {
			if err := db.Create(&category).Error; err != nil {
				logrus.WithError(err).Warnf("Failed to create category %s", category.Name)
			}
		}
	}

	logrus.Info("Initial data seeding completed")
	return nil
}
