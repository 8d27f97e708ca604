package deck

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Renderer turns slide bodies into terminal text at a given width. Results
// are cached per slide and width; a width change re-renders lazily.
type Renderer struct {
	style string

	mu       sync.Mutex
	glamours map[int]*glamour.TermRenderer
	cache    map[cacheKey]string
}

type cacheKey struct {
	index int
	width int
}

// NewRenderer returns a renderer using a glamour standard style ("dark",
// "light", "notty", ...). "plain" skips markdown rendering entirely.
func NewRenderer(style string) *Renderer {
	if strings.TrimSpace(style) == "" {
		style = "dark"
	}
	return &Renderer{
		style:    style,
		glamours: make(map[int]*glamour.TermRenderer),
		cache:    make(map[cacheKey]string),
	}
}

// Render returns slide index of d wrapped to width columns.
func (r *Renderer) Render(d Deck, index, width int) string {
	if index < 0 || index >= d.Len() || width <= 0 {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := cacheKey{index: index, width: width}
	if out, ok := r.cache[key]; ok {
		return out
	}
	out := r.render(d.Slides[index].Body, width)
	r.cache[key] = out
	return out
}

// Reset drops cached output, for example after the deck reloads.
func (r *Renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[cacheKey]string)
}

func (r *Renderer) render(body string, width int) string {
	if r.style != "plain" {
		if tr := r.termRenderer(width); tr != nil {
			if out, err := tr.Render(body); err == nil {
				return strings.Trim(out, "\n")
			}
		}
	}
	return lipgloss.NewStyle().Width(width).Render(body)
}

func (r *Renderer) termRenderer(width int) *glamour.TermRenderer {
	if tr, ok := r.glamours[width]; ok {
		return tr
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		tr = nil
	}
	r.glamours[width] = tr
	return tr
}
