package migrations

import (
	"github.com/mattertouch/storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Collection{}, &models.Product{}, &models.HeroImage{}, &models.Cart{}, &models.CartItem{})
}
