// Package slides holds the landing page slideshow: the page counter, the
// mode-driven timer, and the per-slide transition state.
package slides

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"lechefer/pkg/realtime"
)

var (
	// ErrNoSlides is returned when a slideshow is built without images.
	ErrNoSlides = errors.New("no slides")
	// ErrInvalidDirection is returned by Paginate for a step other than -1 or +1.
	ErrInvalidDirection = errors.New("direction must be -1 or +1")
)

// Track stacking orders; captions sit above images.
const (
	imageZ   = 1
	captionZ = 2
)

// ImageMetadata describes one slide.
type ImageMetadata struct {
	FileName string `json:"fileName"`
	Part     string `json:"part"`
	Group    string `json:"group"`
	Number   string `json:"number"`
}

// Controller owns the page counter and mode of one slideshow. All methods are
// safe for concurrent use; mutations are serialized by a single mutex, so the
// timer and the toggle never observe each other half-applied.
type Controller struct {
	mu      sync.Mutex
	images  []ImageMetadata
	page    int
	mode    Mode
	timer   realtime.Cadence
	image   Track
	caption Track
}

// NewController builds a slideshow at page 0 in showcase mode, with its
// timer established at now and the first slide entering.
func NewController(images []ImageMetadata, now time.Time) (*Controller, error) {
	if len(images) == 0 {
		return nil, ErrNoSlides
	}
	c := &Controller{
		images:  append([]ImageMetadata(nil), images...),
		image:   Track{ZIndex: imageZ},
		caption: Track{ZIndex: captionZ},
	}
	c.timer.Start(now, c.mode.Timing().Timer)
	c.showLocked(now)
	return c, nil
}

// Len is the number of slides.
func (c *Controller) Len() int {
	return len(c.images)
}

// Page returns the unbounded page counter.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// ImageIndex is the page wrapped into [0, Len()).
func (c *Controller) ImageIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexLocked()
}

// Current returns the slide at the current image index.
func (c *Controller) Current() ImageMetadata {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.images[c.indexLocked()]
}

// Paginate moves the page counter one step in direction.
func (c *Controller) Paginate(direction int, now time.Time) error {
	if direction != -1 && direction != 1 {
		return fmt.Errorf("paginate %d: %w", direction, ErrInvalidDirection)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paginateLocked(direction, now)
	return nil
}

// Toggle flips the mode and returns the new one.
func (c *Controller) Toggle(now time.Time) Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := Showcase
	if c.mode == Showcase {
		next = Video
	}
	c.setModeLocked(next, now)
	return next
}

// SetMode switches to m and reports whether anything changed. The timer is
// re-established from now only on an actual change; the page is untouched.
func (c *Controller) SetMode(m Mode, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m == c.mode {
		return false
	}
	c.setModeLocked(m, now)
	return true
}

// RestartTimer re-establishes the timer at now with the current mode's period.
func (c *Controller) RestartTimer(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer.Start(now, c.mode.Timing().Timer)
}

// TimerPeriod is the period of the active timer.
func (c *Controller) TimerPeriod() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.Period
}

// NextTick returns when the timer fires next.
func (c *Controller) NextTick() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.NextWake()
}

// Tick paginates forward once if the timer has fired by now.
func (c *Controller) Tick(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.timer.Advance(now) {
		return false
	}
	c.paginateLocked(1, now)
	return true
}

func (c *Controller) setModeLocked(m Mode, now time.Time) {
	c.mode = m
	c.timer.Start(now, m.Timing().Timer)
}

func (c *Controller) paginateLocked(direction int, now time.Time) {
	c.page += direction
	c.showLocked(now)
}

func (c *Controller) showLocked(now time.Time) {
	timing := c.mode.Timing()
	idx := c.indexLocked()
	c.image.Show(c.page, idx, now, timing.ImageFade, c.mode.ImageBlur())
	c.caption.Show(c.page, idx, now, timing.TextFade, BlurMax)
}

func (c *Controller) indexLocked() int {
	return Wrap(0, len(c.images), c.page)
}

// LayerView is a layer resolved to what should be drawn at a given instant.
type LayerView struct {
	Key       int
	Slide     ImageMetadata
	Index     int
	Phase     Phase
	Opacity   float64
	Blur      float64
	ZIndex    int
	Remaining time.Duration
}

// Snapshot is a consistent view of the slideshow at one instant.
type Snapshot struct {
	Page     int
	Index    int
	Count    int
	Slide    ImageMetadata
	Mode     Mode
	Timing   Timing
	NextTick time.Time
	Images   []LayerView
	Captions []LayerView
}

// Snapshot advances transitions to now and returns the state to render.
func (c *Controller) Snapshot(now time.Time) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image.Advance(now)
	c.caption.Advance(now)
	idx := c.indexLocked()
	next, _ := c.timer.NextWake()
	return Snapshot{
		Page:     c.page,
		Index:    idx,
		Count:    len(c.images),
		Slide:    c.images[idx],
		Mode:     c.mode,
		Timing:   c.mode.Timing(),
		NextTick: next,
		Images:   c.viewsLocked(&c.image, now),
		Captions: c.viewsLocked(&c.caption, now),
	}
}

func (c *Controller) viewsLocked(t *Track, now time.Time) []LayerView {
	layers := t.Layers()
	out := make([]LayerView, 0, len(layers))
	for _, l := range layers {
		out = append(out, LayerView{
			Key:       l.Key,
			Slide:     c.images[l.Index],
			Index:     l.Index,
			Phase:     l.Phase,
			Opacity:   l.Opacity(now),
			Blur:      l.BlurAt(now),
			ZIndex:    t.LayerZ(l),
			Remaining: l.Remaining(now),
		})
	}
	return out
}
