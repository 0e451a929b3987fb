package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Role{},
		&User{},
		&Category{},
		&Document{},
		&Wallet{},
		&Campaign{},
		&Donation{},
		&SuccessStory{},
		&Comment{},
	)
}

// SeedReferenceData inserts the fixed role and category sets. Lookups
// throughout the codebase go by name, so re-running against an already
// seeded database is a no-op.
func SeedReferenceData(db *gorm.DB) error {
	roles := []string{"Admin", "Campaign Creator", "Donor"}
	for _, name := range roles {
		if err := db.Where(Role{Name: name}).FirstOrCreate(&Role{Name: name}).Error; err != nil {
			return err
		}
	}

	categories := []string{"Education", "Health", "Environment", "Disaster Relief", "Community"}
	for _, name := range categories {
		if err := db.Where(Category{Name: name}).FirstOrCreate(&Category{Name: name}).Error; err != nil {
			return err
		}
	}

	return nil
}
