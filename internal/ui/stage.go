package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/carousel/internal/carousel"
)

// stage is the terminal rendition of the carousel viewport. It receives
// layout and transforms from the engine and reports its size in pixels,
// converting terminal cells with the configured cell size.
type stage struct {
	cellWidth  float64
	cellHeight float64
	cols, rows int

	containerPct float64
	itemPct      float64

	// offset is what is on screen; target is the last requested transform.
	offset, from, target float64
	transitions          bool
	frames, remaining    int
	ticking              bool
}

var (
	_ carousel.Renderer = (*stage)(nil)
	_ carousel.Metrics  = (*stage)(nil)
)

func newStage(cellWidth, cellHeight float64, frames int) *stage {
	return &stage{
		cellWidth:   cellWidth,
		cellHeight:  cellHeight,
		transitions: true,
		frames:      max(frames, 0),
	}
}

func (s *stage) SetContainerWidthPercent(p float64) { s.containerPct = p }
func (s *stage) SetItemWidthPercent(p float64)      { s.itemPct = p }

// SetTransform animates toward p over the configured frames, or jumps there
// when transitions are off.
func (s *stage) SetTransform(p float64) {
	s.target = p
	if !s.transitions || s.frames == 0 {
		s.offset = p
		s.remaining = 0
		return
	}
	s.from = s.offset
	s.remaining = s.frames
}

func (s *stage) SetTransitionEnabled(enabled bool) {
	s.transitions = enabled
	if !enabled {
		s.offset = s.target
		s.remaining = 0
	}
}

func (s *stage) ViewportWidth() float64 {
	return float64(s.cols) * s.cellWidth
}

func (s *stage) ContainerWidth() float64 {
	return s.ViewportWidth() * s.containerPct / 100
}

func (s *stage) resize(cols, rows int) {
	s.cols = max(cols, 0)
	s.rows = max(rows, 0)
}

func (s *stage) animating() bool {
	return s.remaining > 0
}

// advance moves one frame along an ease-out curve and reports whether more
// frames remain.
func (s *stage) advance() bool {
	if s.remaining == 0 {
		return false
	}
	s.remaining--
	if s.remaining == 0 {
		s.offset = s.target
		return false
	}
	t := 1 - float64(s.remaining)/float64(s.frames)
	eased := 1 - (1-t)*(1-t)
	s.offset = s.from + (s.target-s.from)*eased
	return true
}

// slideWidth is the width of one slide in cells.
func (s *stage) slideWidth() int {
	container := float64(s.cols) * s.containerPct / 100
	return max(int(math.Round(container*s.itemPct/100)), 1)
}

// left is the first strip column shown in the viewport.
func (s *stage) left(count, slideWidth int) int {
	return int(math.Round(-s.offset / 100 * float64(count*slideWidth)))
}

// view renders the visible window of a count slide strip. slide renders one
// slide as a block of exactly width by height cells.
func (s *stage) view(count int, slide func(index, width, height int) string) string {
	if s.cols == 0 || s.rows == 0 {
		return ""
	}
	blank := strings.Repeat(" ", s.cols)
	if count == 0 || s.itemPct <= 0 {
		return strings.TrimSuffix(strings.Repeat(blank+"\n", s.rows), "\n")
	}

	w := s.slideWidth()
	left := s.left(count, w)
	first := floorDiv(left, w)
	last := floorDiv(left+s.cols-1, w)

	blocks := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		if i < 0 || i >= count {
			blocks = append(blocks, blankBlock(w, s.rows))
			continue
		}
		blocks = append(blocks, fitBlock(slide(i, w, s.rows), w, s.rows))
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)

	start := left - first*w
	lines := strings.Split(strip, "\n")
	out := make([]string, s.rows)
	for i := range out {
		if i >= len(lines) {
			out[i] = blank
			continue
		}
		line := ansi.Cut(lines[i], start, start+s.cols)
		if pad := s.cols - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

func fitBlock(block string, w, h int) string {
	return lipgloss.NewStyle().
		Width(w).MaxWidth(w).
		Height(h).MaxHeight(h).
		Render(block)
}

func blankBlock(w, h int) string {
	return strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", w)+"\n", h), "\n")
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
