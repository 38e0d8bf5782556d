package seeders

import (
	"fmt"
	"log"

	"github.com/mattertouch/storefront/app/configs"
	"github.com/mattertouch/storefront/app/db/fakers"
	"github.com/mattertouch/storefront/app/models"
	"gorm.io/gorm"
)

var collectionNames = []string{"clothings", "accessories"}

// DBSeed fills an empty database: the admin account from env, the two demo
// collections with faker products, and the landing-page hero sequence.
// Existing rows are reused, so running it twice does not duplicate data.
func DBSeed(db *gorm.DB, env configs.ENV) error {
	if env.AdminEmail != "" && env.AdminPassword != "" {
		admin := fakers.AdminFaker(env.AdminEmail, env.AdminPassword)
		if err := db.FirstOrCreate(admin, models.User{Email: admin.Email}).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
	} else {
		log.Println("Warning: ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
	}

	for _, name := range collectionNames {
		collection := fakers.CollectionFaker(name)
		if err := db.FirstOrCreate(collection, models.Collection{Slug: collection.Slug}).Error; err != nil {
			return fmt.Errorf("failed to seed collection %s: %w", name, err)
		}

		var count int64
		if err := db.Model(&models.Product{}).Where("collection_id = ?", collection.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Printf("Collection %s already has %d products, skipping", name, count)
			continue
		}

		for i := 0; i < 4; i++ {
			if err := db.Create(fakers.ProductFaker(collection)).Error; err != nil {
				return fmt.Errorf("failed to seed product for %s: %w", name, err)
			}
		}
	}

	var heroCount int64
	if err := db.Model(&models.HeroImage{}).Count(&heroCount).Error; err != nil {
		return err
	}
	if heroCount == 0 {
		for i := 0; i < 3; i++ {
			if err := db.Create(fakers.HeroImageFaker(i)).Error; err != nil {
				return fmt.Errorf("failed to seed hero image: %w", err)
			}
		}
	}

	return nil
}
