package carousel

import "strings"

// DisplayImages resolves the product gallery's display set under a color
// selection. A selected color with a mapped, non-blank image replaces the
// whole gallery with that single image. A selected color with no mapping
// yields an empty set on purpose: the placeholder is the "missing asset"
// signal, not an error. No selection shows the default gallery.
func DisplayImages(gallery []string, selectedColor string, colorImages map[string]string) []string {
	if selectedColor == "" {
		return gallery
	}
	if url, ok := colorImages[selectedColor]; ok && strings.TrimSpace(url) != "" {
		return []string{url}
	}
	return []string{}
}

// NewGallery builds the product-gallery controller for a color selection.
// Auto-advance is suspended whenever a color is selected, which also covers
// the single-mapped-image case.
func NewGallery(productName string, gallery []string, selectedColor string, colorImages map[string]string) *Controller {
	display := DisplayImages(gallery, selectedColor, colorImages)

	images := make([]Image, len(display))
	for i, src := range display {
		images[i] = Image{
			Src:      src,
			Alt:      productName,
			Priority: i == 0,
		}
	}
	return New(GalleryConfig(productName, selectedColor != ""), images)
}

// NewHero builds the landing-page banner controller from the ordered hero
// sequence.
func NewHero(label string, frames []Image) *Controller {
	return New(HeroConfig(label), frames)
}
