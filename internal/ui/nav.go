package ui

import (
	"github.com/charmbracelet/bubbles/paginator"

	"github.com/five82/carousel/internal/carousel"
)

// navState mirrors the engine for the chrome around the stage. It is kept
// current by a move listener rather than by polling the engine in View.
type navState struct {
	engine  *carousel.Engine
	index   int
	canPrev bool
	canNext bool
	pager   paginator.Model
}

func newNavState() *navState {
	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = 1
	p.ActiveDot = "●"
	p.InactiveDot = "○"
	return &navState{pager: p}
}

// onMove is registered with the engine. It also fires during construction,
// before attach, so the engine may still be nil.
func (n *navState) onMove(index int) {
	n.index = index
	n.pager.Page = index
	if n.engine != nil {
		n.canPrev = n.engine.CanPrev()
		n.canNext = n.engine.CanNext()
	}
}

func (n *navState) attach(e *carousel.Engine) {
	n.engine = e
	n.pager.TotalPages = max(e.ItemCount(), 1)
	n.onMove(e.CurrentIndex())
}

func (n *navState) refresh() {
	if n.engine != nil {
		n.onMove(n.engine.CurrentIndex())
	}
}

// pagerView renders dots, switching to "i/n" when the dots would not fit.
func (n *navState) pagerView(cols int) string {
	p := n.pager
	if p.TotalPages > cols/arabicPagerRatio {
		p.Type = paginator.Arabic
	}
	return p.View()
}

// lastWindow is the index that shows the final slides.
func lastWindow(e *carousel.Engine) int {
	return max(e.ItemCount()-e.SlidesVisible(), 0)
}

// reachable clamps target to an index GoTo accepts from any position.
func reachable(e *carousel.Engine, target int) int {
	return min(max(target, 0), lastWindow(e))
}
