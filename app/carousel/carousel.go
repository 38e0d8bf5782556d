// Package carousel implements the rotating-image controller shared by the
// landing-page hero banner and the product gallery. One state machine,
// configured as data per usage site, owns the auto-advance timer so every
// surface gets identical cancel/restart behavior and a timer can never be
// armed twice.
package carousel

import (
	"sync"
	"time"
)

type Transition string

const (
	TransitionFade  Transition = "fade"
	TransitionSlide Transition = "slide"
)

type IndicatorStyle string

const (
	IndicatorDots IndicatorStyle = "dots"
	IndicatorBars IndicatorStyle = "bars"
)

type Image struct {
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Priority bool   `json:"priority"`
}

type Config struct {
	// Interval between auto-advances. Zero disables the timer.
	Interval time.Duration
	// AutoAdvance gates the timer independently of Interval, e.g. the
	// gallery keeps its interval but suspends while a color is selected.
	AutoAdvance      bool
	Transition       Transition
	ShowArrows       bool
	ShowIndicators   bool
	IndicatorStyle   IndicatorStyle
	PlaceholderLabel string
}

// HeroConfig is the landing-page banner: horizontal slide, bar indicators,
// a fixed five second rotation, no arrows.
func HeroConfig(label string) Config {
	return Config{
		Interval:         5 * time.Second,
		AutoAdvance:      true,
		Transition:       TransitionSlide,
		ShowArrows:       false,
		ShowIndicators:   true,
		IndicatorStyle:   IndicatorBars,
		PlaceholderLabel: label,
	}
}

// GalleryConfig is the product gallery: cross-fade, dot indicators, four
// second rotation that is suspended while a color is selected.
func GalleryConfig(productName string, colorSelected bool) Config {
	return Config{
		Interval:         4 * time.Second,
		AutoAdvance:      !colorSelected,
		Transition:       TransitionFade,
		ShowArrows:       true,
		ShowIndicators:   true,
		IndicatorStyle:   IndicatorDots,
		PlaceholderLabel: productName,
	}
}

// Controller holds the carousel state: the current index, the sticky set of
// failed image indices, and at most one armed timer.
type Controller struct {
	mu      sync.Mutex
	cfg     Config
	images  []Image
	current int
	failed  map[int]bool

	timer     *time.Timer
	started   bool
	onAdvance func(index int)
}

func New(cfg Config, images []Image) *Controller {
	return &Controller{
		cfg:    cfg,
		images: images,
		failed: make(map[int]bool),
	}
}

// OnAdvance registers a listener invoked after every timer-driven advance.
// Must be set before Start.
func (c *Controller) OnAdvance(fn func(index int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAdvance = fn
}

// Start enables auto-advance. The timer is armed only when there is
// something to advance to: more than one image, a positive interval, and
// auto-advance not suspended by configuration.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = true
	c.rearmLocked()
}

// Stop cancels any pending auto-advance. Safe to call repeatedly and after
// teardown.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = false
	if c.timer != nil {
		c.timer.Stop()
	}
}

func (c *Controller) autoEligibleLocked() bool {
	return c.cfg.AutoAdvance && c.cfg.Interval > 0 && len(c.images) > 1
}

// rearmLocked reconciles the single timer with the current state. A new
// deadline always replaces the old one, so manual interaction can never
// stack timers on top of each other.
func (c *Controller) rearmLocked() {
	if !c.started || !c.autoEligibleLocked() {
		if c.timer != nil {
			c.timer.Stop()
		}
		return
	}
	if c.timer == nil {
		c.timer = time.AfterFunc(c.cfg.Interval, c.tick)
		return
	}
	c.timer.Stop()
	c.timer.Reset(c.cfg.Interval)
}

func (c *Controller) tick() {
	c.mu.Lock()
	if !c.started || !c.autoEligibleLocked() {
		c.mu.Unlock()
		return
	}
	c.current = (c.current + 1) % len(c.images)
	idx := c.current
	fn := c.onAdvance
	c.timer.Reset(c.cfg.Interval)
	c.mu.Unlock()

	if fn != nil {
		fn(idx)
	}
}

// Next advances manually and pushes the auto-advance deadline out by a full
// interval, so the timer never fights the user.
func (c *Controller) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.images) == 0 {
		return 0
	}
	c.current = (c.current + 1) % len(c.images)
	c.rearmLocked()
	return c.current
}

func (c *Controller) Prev() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.images) == 0 {
		return 0
	}
	c.current = (c.current - 1 + len(c.images)) % len(c.images)
	c.rearmLocked()
	return c.current
}

// GoTo jumps to an indicator's index with the same timer reset as Next/Prev.
// Out-of-range indices are ignored.
func (c *Controller) GoTo(index int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.images) {
		return c.current
	}
	c.current = index
	c.rearmLocked()
	return c.current
}

func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// MarkFailed records a load failure for an index. The flag is sticky for the
// lifetime of the current image set; repeated failures never retry or thrash
// state. Cleared only by SetImages.
func (c *Controller) MarkFailed(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.images) {
		return
	}
	c.failed[index] = true
}

// SetImages swaps the display set, e.g. when a color selection changes which
// images are shown. The new set has no relation to the old indices, so the
// index resets to zero and all failure flags are dropped. The timer is
// re-evaluated against the new set size.
func (c *Controller) SetImages(images []Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images = images
	c.current = 0
	c.failed = make(map[int]bool)
	c.rearmLocked()
}

// SetAutoAdvance toggles the configured auto-advance gate, used by the
// gallery when a color filter comes and goes.
func (c *Controller) SetAutoAdvance(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.AutoAdvance = enabled
	c.rearmLocked()
}

// ImageView is one renderable frame. A failed frame renders as a neutral
// panel labeled with the image's alt text instead of a broken image.
type ImageView struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Failed bool   `json:"failed"`
}

// View is the full render state. With zero images only the branded
// placeholder shows; with one image the chrome (arrows, indicators)
// disappears because there is nothing to advance to.
type View struct {
	Index            int            `json:"index"`
	Count            int            `json:"count"`
	Images           []ImageView    `json:"images"`
	Transition       Transition     `json:"transition"`
	ShowArrows       bool           `json:"showArrows"`
	ShowIndicators   bool           `json:"showIndicators"`
	IndicatorStyle   IndicatorStyle `json:"indicatorStyle"`
	Placeholder      bool           `json:"placeholder"`
	PlaceholderLabel string         `json:"placeholderLabel"`
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.images)
	views := make([]ImageView, n)
	for i, img := range c.images {
		views[i] = ImageView{
			Src:    img.Src,
			Alt:    img.Alt,
			Failed: c.failed[i],
		}
	}
	return View{
		Index:            c.current,
		Count:            n,
		Images:           views,
		Transition:       c.cfg.Transition,
		ShowArrows:       c.cfg.ShowArrows && n > 1,
		ShowIndicators:   c.cfg.ShowIndicators && n > 1,
		IndicatorStyle:   c.cfg.IndicatorStyle,
		Placeholder:      n == 0,
		PlaceholderLabel: c.cfg.PlaceholderLabel,
	}
}
