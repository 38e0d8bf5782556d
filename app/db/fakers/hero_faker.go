package fakers

import (
	"fmt"

	"github.com/mattertouch/storefront/app/models"
)

func HeroImageFaker(position int) *models.HeroImage {
	return &models.HeroImage{
		Name:     fmt.Sprintf("产品 %d", position+1),
		ImageURL: fmt.Sprintf("/images/hero/hero-%d.jpg", position+1),
		Position: position,
	}
}
