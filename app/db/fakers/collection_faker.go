package fakers

import (
	"fmt"

	"github.com/gosimple/slug"
	"github.com/mattertouch/storefront/app/models"
)

func CollectionFaker(name string) *models.Collection {
	slugText := slug.Make(name)
	cover := fmt.Sprintf("/images/collections/%s/cover.webp", slugText)
	description := fmt.Sprintf("%s 系列", name)

	return &models.Collection{
		Name:          name,
		Slug:          slugText,
		CoverImageURL: &cover,
		Description:   &description,
	}
}
