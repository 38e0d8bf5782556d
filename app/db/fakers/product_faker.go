package fakers

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/mattertouch/storefront/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var sampleColors = []string{"黑色", "白色", "灰色", "米色", "卡其色", "驼色"}
var sampleSizes = []string{"S", "M", "L", "XL"}

func ProductFaker(collection *models.Collection) *models.Product {
	name := faker.Word()
	base := fmt.Sprintf("/images/collections/%s/%s", collection.Slug, faker.UUIDDigit()[:8])

	colors := pick(sampleColors, rand.Intn(3)+1)
	colorImages := make(map[string]string, len(colors))
	for _, color := range colors {
		colorImages[color] = fmt.Sprintf("%s/colors/%s.webp", base, color)
	}

	price := decimal.NewFromFloat(float64(rand.Intn(1400)+100) + 0.99)
	description := faker.Sentence()
	composition := "100% 棉"
	care := "手洗，不可漂白，平铺晾干，低温熨烫"
	imageURL := base + ".webp"
	hoverImageURL := base + "-hover.webp"

	return &models.Product{
		Name:          name,
		Description:   &description,
		Price:         &price,
		ImageURL:      &imageURL,
		HoverImageURL: &hoverImageURL,
		Colors:        mustJSON(colors),
		Sizes:         mustJSON(pick(sampleSizes, rand.Intn(3)+1)),
		Composition:   &composition,
		Care:          &care,
		GalleryImages: mustJSON([]string{imageURL, hoverImageURL}),
		DetailTexts:   mustJSON([]string{faker.Paragraph()}),
		DetailImages:  mustJSON([]string{imageURL, hoverImageURL, imageURL}),
		ColorImages:   mustJSON(colorImages),
		CollectionID:  collection.ID,
	}
}

func pick(from []string, n int) []string {
	idx := rand.Perm(len(from))
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, from[i])
	}
	return out
}

func mustJSON(v interface{}) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(raw)
}
