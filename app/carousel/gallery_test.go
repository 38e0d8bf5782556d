package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayImagesWithoutSelection(t *testing.T) {
	gallery := []string{"/images/coat-1.jpg", "/images/coat-2.jpg"}
	colorImages := map[string]string{"黑色": "/images/coat-black.jpg"}

	assert.Equal(t, gallery, DisplayImages(gallery, "", colorImages))
}

func TestDisplayImagesMappedColorReplacesGallery(t *testing.T) {
	gallery := []string{"/images/coat-1.jpg", "/images/coat-2.jpg"}
	colorImages := map[string]string{"黑色": "/images/coat-black.jpg"}

	assert.Equal(t, []string{"/images/coat-black.jpg"}, DisplayImages(gallery, "黑色", colorImages))
}

func TestDisplayImagesUnmappedColorIsEmpty(t *testing.T) {
	gallery := []string{"/images/coat-1.jpg"}
	colorImages := map[string]string{"黑色": "/images/coat-black.jpg"}

	assert.Empty(t, DisplayImages(gallery, "白色", colorImages))
}

func TestDisplayImagesBlankMappingCountsAsMissing(t *testing.T) {
	gallery := []string{"/images/coat-1.jpg"}
	colorImages := map[string]string{"白色": "   "}

	assert.Empty(t, DisplayImages(gallery, "白色", colorImages))
}

func TestNewGalleryMappedColorSingleImage(t *testing.T) {
	gallery := []string{"/images/coat-1.jpg", "/images/coat-2.jpg", "/images/coat-3.jpg"}
	colorImages := map[string]string{"黑色": "/images/coat-black.jpg"}

	c := NewGallery("Wool Coat", gallery, "黑色", colorImages)
	view := c.View()

	assert.Equal(t, 1, view.Count)
	assert.Equal(t, "/images/coat-black.jpg", view.Images[0].Src)
	assert.Equal(t, "Wool Coat", view.Images[0].Alt)
	// One image means no arrows or indicators, and nothing to auto-advance.
	assert.False(t, view.ShowArrows)
	assert.False(t, view.ShowIndicators)
	assert.False(t, view.Placeholder)
}

func TestNewGalleryUnmappedColorShowsPlaceholder(t *testing.T) {
	gallery := []string{"/images/coat-1.jpg", "/images/coat-2.jpg"}
	colorImages := map[string]string{"黑色": "/images/coat-black.jpg"}

	c := NewGallery("Wool Coat", gallery, "白色", colorImages)
	view := c.View()

	assert.True(t, view.Placeholder)
	assert.Equal(t, "Wool Coat", view.PlaceholderLabel)
	assert.Equal(t, 0, view.Count)
}

func TestNewGalleryDeselectRestoresFullGallery(t *testing.T) {
	gallery := []string{"/images/coat-1.jpg", "/images/coat-2.jpg", "/images/coat-3.jpg"}
	colorImages := map[string]string{"黑色": "/images/coat-black.jpg"}

	c := NewGallery("Wool Coat", gallery, "", colorImages)
	view := c.View()

	assert.Equal(t, 3, view.Count)
	assert.Equal(t, 0, view.Index)
	assert.True(t, view.ShowArrows)
	assert.True(t, view.ShowIndicators)
}

func TestNewHeroUsesHeroChrome(t *testing.T) {
	frames := []Image{
		{Src: "/images/hero/hero-1.jpg", Alt: "产品 1", Priority: true},
		{Src: "/images/hero/hero-2.jpg", Alt: "产品 2"},
	}
	c := NewHero("MATTER TOUCH", frames)
	view := c.View()

	assert.Equal(t, TransitionSlide, view.Transition)
	assert.False(t, view.ShowArrows)
	assert.True(t, view.ShowIndicators)
	assert.Equal(t, IndicatorBars, view.IndicatorStyle)
	assert.Equal(t, 2, view.Count)
}
