// Package gesture turns a pointer or single-touch drag into carousel
// navigation.
//
// While a drag is in progress the carousel follows the pointer: every sample
// pushes the canonical offset of the current slide plus the drag distance,
// expressed as a percentage of the container width. On release the drag is
// measured against the viewport width. Past CommitThreshold the carousel moves
// exactly one step in the drag direction, however far the drag went; short of
// it the carousel snaps back to the current slide.
//
// A Controller only drives the engine through carousel.Driver. It never holds
// state between gestures.
package gesture

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/five82/carousel/internal/carousel"
	"github.com/five82/carousel/internal/logging"
)

// CommitThreshold is the fraction of the viewport width a drag must exceed to
// commit a move.
const CommitThreshold = 0.2

// Point is a screen position or a distance, in pixels.
type Point struct {
	X, Y float64
}

// Sample is one normalized input event.
type Sample struct {
	X, Y float64
	// Touches is the number of simultaneous contacts; mouse samples use 0 or 1.
	Touches int
	// Touch marks samples that came from a touch screen.
	Touch bool
}

// Transformer is the part of the render boundary a gesture writes to.
type Transformer interface {
	SetTransform(offsetPercent float64)
	SetTransitionEnabled(enabled bool)
}

// Controller tracks at most one drag at a time.
type Controller struct {
	driver   carousel.Driver
	render   Transformer
	metrics  carousel.Metrics
	log      *logrus.Entry
	origin   *Point
	baseline float64
	last     *Point
}

// New attaches a controller to d. Offsets go to r; widths come from m.
func New(d carousel.Driver, r Transformer, m carousel.Metrics) *Controller {
	return &Controller{
		driver:  d,
		render:  r,
		metrics: m,
		log:     logging.NewLogger("gesture"),
	}
}

// Active reports whether a drag is in progress.
func (c *Controller) Active() bool {
	return c.origin != nil
}

// Start begins a drag at s. Multi-touch samples are ignored.
func (c *Controller) Start(s Sample) {
	if s.Touches > 1 {
		c.log.WithField("touches", s.Touches).Debug("multi-touch ignored")
		return
	}
	c.origin = &Point{X: s.X, Y: s.Y}
	c.last = nil
	c.baseline = c.metrics.ContainerWidth()
	c.render.SetTransitionEnabled(false)
}

// Move follows the pointer. It reports whether the drag claims the event:
// a touch drag that is more horizontal than vertical should not scroll the
// page underneath.
func (c *Controller) Move(s Sample) (claimed bool) {
	if c.origin == nil {
		return false
	}
	delta := Point{X: s.X - c.origin.X, Y: s.Y - c.origin.Y}
	claimed = s.Touch && math.Abs(delta.X) > math.Abs(delta.Y)

	if c.baseline > 0 {
		base := carousel.OffsetPercent(c.driver.CurrentIndex(), c.driver.ItemCount())
		c.render.SetTransform(base + 100*delta.X/c.baseline)
	}
	c.last = &delta
	return claimed
}

// End finishes the drag, committing one step or snapping back.
func (c *Controller) End() {
	c.render.SetTransitionEnabled(true)
	if c.origin != nil && c.last != nil {
		c.settle(*c.last)
	}
	c.origin = nil
	c.last = nil
}

// Cancel is End: whatever the last sample said decides the outcome.
func (c *Controller) Cancel() {
	c.End()
}

func (c *Controller) settle(delta Point) {
	width := c.metrics.ViewportWidth()
	if width > 0 && math.Abs(delta.X)/width > CommitThreshold {
		if delta.X < 0 {
			c.log.WithField("dx", delta.X).Debug("drag committed forward")
			c.driver.Next()
		} else {
			c.log.WithField("dx", delta.X).Debug("drag committed backward")
			c.driver.Prev()
		}
		return
	}
	c.driver.GoTo(c.driver.CurrentIndex())
}
