package carousel

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/five82/carousel/internal/logging"
)

// DefaultCompactBelow is the viewport width, in pixels, under which the
// carousel collapses to a single visible slide.
const DefaultCompactBelow = 800

// ErrInvalidOptions reports a constructor precondition violation.
var ErrInvalidOptions = errors.New("invalid carousel options")

// Options are the desktop values supplied once at construction.
type Options struct {
	SlidesToScroll int
	SlidesVisible  int
	Loop           bool
	// CompactBelow overrides DefaultCompactBelow when positive.
	CompactBelow float64
}

// DefaultOptions returns one visible slide, one slide per step, no looping.
func DefaultOptions() Options {
	return Options{SlidesToScroll: 1, SlidesVisible: 1, CompactBelow: DefaultCompactBelow}
}

// Renderer receives layout and transform values. Implementations decide how
// (and whether) to animate them.
type Renderer interface {
	SetContainerWidthPercent(p float64)
	SetItemWidthPercent(p float64)
	SetTransform(offsetPercent float64)
	SetTransitionEnabled(enabled bool)
}

// Metrics reports rendered sizes in pixels. Values are queried, never cached.
type Metrics interface {
	ViewportWidth() float64
	ContainerWidth() float64
}

// MoveFunc is notified with the current index after every committed move and
// every layout refresh.
type MoveFunc func(index int)

// Driver is the subset of the engine an input source may use. It cannot touch
// layout or listeners.
type Driver interface {
	Next()
	Prev()
	GoTo(index int)
	CurrentIndex() int
	ItemCount() int
}

// Engine owns the index state machine of a carousel.
type Engine struct {
	itemCount int
	opts      Options
	renderer  Renderer
	metrics   Metrics
	log       *logrus.Entry

	current   int
	compact   bool
	listeners []MoveFunc
	unlisten  func()
}

var _ Driver = (*Engine)(nil)

// New builds an engine for itemCount slides, lays it out, and notifies every
// listener with index 0 before returning.
func New(itemCount int, opts Options, r Renderer, m Metrics, listeners ...MoveFunc) (*Engine, error) {
	if itemCount < 0 {
		return nil, fmt.Errorf("%w: item count %d is negative", ErrInvalidOptions, itemCount)
	}
	if opts.SlidesVisible < 1 {
		return nil, fmt.Errorf("%w: slides visible must be at least 1, got %d", ErrInvalidOptions, opts.SlidesVisible)
	}
	if opts.SlidesToScroll < 1 {
		return nil, fmt.Errorf("%w: slides to scroll must be at least 1, got %d", ErrInvalidOptions, opts.SlidesToScroll)
	}
	if r == nil || m == nil {
		return nil, fmt.Errorf("%w: renderer and metrics are required", ErrInvalidOptions)
	}
	if opts.CompactBelow <= 0 {
		opts.CompactBelow = DefaultCompactBelow
	}

	e := &Engine{
		itemCount: itemCount,
		opts:      opts,
		renderer:  r,
		metrics:   m,
		log:       logging.NewLogger("carousel"),
		listeners: append([]MoveFunc(nil), listeners...),
	}
	e.compact = e.isCompactWidth()
	e.recomputeLayout()
	e.renderer.SetTransform(0)
	e.notify()
	return e, nil
}

// SlidesVisible is the effective number of slides in the viewport.
func (e *Engine) SlidesVisible() int {
	if e.compact {
		return 1
	}
	return e.opts.SlidesVisible
}

// SlidesToScroll is the effective step of Next and Prev.
func (e *Engine) SlidesToScroll() int {
	if e.compact {
		return 1
	}
	return e.opts.SlidesToScroll
}

// CurrentIndex is the first visible slide.
func (e *Engine) CurrentIndex() int { return e.current }

// ItemCount is the number of slides the engine was built for.
func (e *Engine) ItemCount() int { return e.itemCount }

// Compact reports whether the viewport is under the compact breakpoint.
func (e *Engine) Compact() bool { return e.compact }

// Loop reports whether moves past either end wrap around.
func (e *Engine) Loop() bool { return e.opts.Loop }

// Offset is the canonical transform of the current index.
func (e *Engine) Offset() float64 {
	return OffsetPercent(e.current, e.itemCount)
}

// CanPrev reports whether a previous control should be offered.
func (e *Engine) CanPrev() bool {
	return e.opts.Loop || e.current > 0
}

// CanNext reports whether a next control should be offered.
func (e *Engine) CanNext() bool {
	return e.opts.Loop || e.hasItem(e.current+e.SlidesVisible())
}

// Next moves forward by one step.
func (e *Engine) Next() { e.GoTo(e.current + e.SlidesToScroll()) }

// Prev moves back by one step.
func (e *Engine) Prev() { e.GoTo(e.current - e.SlidesToScroll()) }

// GoTo moves to target when the bound checks allow it. Out of range targets
// wrap when looping and are otherwise ignored.
func (e *Engine) GoTo(target int) {
	if e.itemCount == 0 {
		return
	}
	switch {
	case target < 0:
		if !e.opts.Loop {
			e.log.WithField("target", target).Debug("move absorbed at start")
			return
		}
		target = max(e.itemCount-e.SlidesVisible(), 0)
	case target > e.itemCount || (target > e.current && !e.hasItem(e.current+e.SlidesVisible())):
		if !e.opts.Loop {
			e.log.WithField("target", target).Debug("move absorbed at end")
			return
		}
		target = 0
	}

	e.renderer.SetTransform(OffsetPercent(target, e.itemCount))
	e.current = target
	e.log.WithFields(logrus.Fields{"index": target, "compact": e.compact}).Debug("moved")
	e.notify()
}

// OnMove appends fn to the listeners. Listeners live as long as the engine.
func (e *Engine) OnMove(fn MoveFunc) {
	if fn == nil {
		return
	}
	e.listeners = append(e.listeners, fn)
}

// OnViewportChange re-resolves compact mode. A mode switch re-lays out the
// carousel and re-notifies listeners with the unchanged index.
func (e *Engine) OnViewportChange() {
	compact := e.isCompactWidth()
	if compact == e.compact {
		return
	}
	e.compact = compact
	e.recomputeLayout()
	e.log.WithFields(logrus.Fields{"compact": compact, "index": e.current}).Debug("layout changed")
	e.notify()
}

// Listen subscribes OnViewportChange to sig, replacing any previous signal.
func (e *Engine) Listen(sig ResizeSignal) {
	e.Close()
	if sig == nil {
		return
	}
	e.unlisten = sig.Subscribe(e.OnViewportChange)
}

// Close unsubscribes from the resize signal.
func (e *Engine) Close() {
	if e.unlisten != nil {
		e.unlisten()
		e.unlisten = nil
	}
}

func (e *Engine) recomputeLayout() {
	container, item := Layout(e.itemCount, e.SlidesVisible())
	e.renderer.SetContainerWidthPercent(container)
	e.renderer.SetItemWidthPercent(item)
}

func (e *Engine) notify() {
	for _, fn := range e.listeners {
		fn(e.current)
	}
}

func (e *Engine) hasItem(index int) bool {
	return index >= 0 && index < e.itemCount
}

func (e *Engine) isCompactWidth() bool {
	return e.metrics.ViewportWidth() < e.opts.CompactBelow
}
