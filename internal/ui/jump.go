package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// jumpState is the "/" prompt that fuzzy-matches slide titles.
type jumpState struct {
	active   bool
	input    textinput.Model
	matches  fuzzy.Matches
	selected int
}

func newJumpState() jumpState {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "slide title"
	ti.CharLimit = 64
	return jumpState{input: ti}
}

func (j *jumpState) open() tea.Cmd {
	j.active = true
	j.input.SetValue("")
	j.matches = nil
	j.selected = 0
	return j.input.Focus()
}

func (j *jumpState) close() {
	j.active = false
	j.input.Blur()
}

func (j *jumpState) filter(titles []string) {
	query := strings.TrimSpace(j.input.Value())
	if query == "" {
		j.matches = nil
	} else {
		j.matches = fuzzy.Find(query, titles)
	}
	j.selected = min(j.selected, max(len(j.matches)-1, 0))
}

func (j *jumpState) move(delta int) {
	if len(j.matches) == 0 {
		return
	}
	j.selected = (j.selected + delta + len(j.matches)) % len(j.matches)
}

// target returns the slide index of the selected match.
func (j jumpState) target() (int, bool) {
	if j.selected >= len(j.matches) {
		return 0, false
	}
	return j.matches[j.selected].Index, true
}

func (j jumpState) view(s Styles) string {
	out := j.input.View()
	switch {
	case strings.TrimSpace(j.input.Value()) == "":
	case len(j.matches) == 0:
		out += "  " + s.WarningText.Render("no match")
	default:
		match := j.matches[j.selected]
		out += fmt.Sprintf("  %s %s",
			s.AccentText.Render("→ "+match.Str),
			s.FaintText.Render(fmt.Sprintf("(%d/%d)", j.selected+1, len(j.matches))))
	}
	return out
}
