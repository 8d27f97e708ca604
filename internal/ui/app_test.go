package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/carousel/internal/carousel"
	"github.com/five82/carousel/internal/config"
	"github.com/five82/carousel/internal/deck"
	"github.com/five82/carousel/internal/prefs"
	"github.com/five82/carousel/internal/state"
)

// With 8 pixel cells a 126 column terminal leaves a 120 column, 960 pixel
// stage, which is wide enough for the desktop layout.
const (
	testWidth  = 126
	testHeight = 20
)

var testTitles = []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta"}

func testDeck(n int) *deck.Deck {
	bodies := make([]string, n)
	for i := range bodies {
		bodies[i] = "# " + testTitles[i] + "\n\nbody"
	}
	return &deck.Deck{
		Path:   "talk.md",
		Slides: deck.Parse(strings.Join(bodies, "\n---\n"), "talk.md"),
	}
}

func testConfig(visible, scroll int) config.Config {
	cfg := config.Default()
	cfg.SlidesVisible = visible
	cfg.SlidesToScroll = scroll
	cfg.MarkdownStyle = "plain"
	cfg.TransitionFrames = 0
	return cfg
}

func newTestModel(t *testing.T, slides int, cfg config.Config) (Model, *state.Store) {
	t.Helper()
	store := &state.Store{}
	store.Update(testDeck(slides), nil)

	m, err := New(Options{
		Store:     store,
		Config:    cfg,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return update(t, m, tea.WindowSizeMsg{Width: testWidth, Height: testHeight}), store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func TestNew_InvalidOptionsFail(t *testing.T) {
	cfg := testConfig(0, 1)
	_, err := New(Options{Config: cfg, PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")})
	if !errors.Is(err, carousel.ErrInvalidOptions) {
		t.Fatalf("New error = %v, want ErrInvalidOptions", err)
	}
}

func TestKeys_NavigateEngine(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(1, 1))

	steps := []struct {
		msg  tea.KeyMsg
		want int
	}{
		{keyRunes("l"), 1},
		{tea.KeyMsg{Type: tea.KeyRight}, 2},
		{keyRunes("n"), 3},
		{keyRunes("h"), 2},
		{tea.KeyMsg{Type: tea.KeyLeft}, 1},
		{keyRunes("G"), 4},
		{keyRunes("l"), 4},
		{keyRunes("g"), 0},
		{keyRunes("p"), 0},
	}
	for i, step := range steps {
		m = update(t, m, step.msg)
		if got := m.engine.CurrentIndex(); got != step.want {
			t.Fatalf("step %d (%s): index = %d, want %d", i, step.msg, got, step.want)
		}
		if m.nav.index != step.want {
			t.Fatalf("step %d: nav index = %d, want %d", i, m.nav.index, step.want)
		}
	}
}

func TestKeys_LastWindowWithSeveralVisible(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(2, 1))

	m = update(t, m, keyRunes("G"))
	if got := m.engine.CurrentIndex(); got != 3 {
		t.Fatalf("index after G = %d, want 3", got)
	}
	if m.nav.canNext {
		t.Fatalf("next button visible on the last window")
	}
	if !m.nav.canPrev {
		t.Fatalf("prev button hidden on the last window")
	}
}

func TestResize_SwitchesCompactMode(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(2, 2))
	if m.engine.Compact() || m.engine.SlidesVisible() != 2 {
		t.Fatalf("compact = %v visible = %d, want desktop with 2", m.engine.Compact(), m.engine.SlidesVisible())
	}

	m = update(t, m, keyRunes("l"))
	if got := m.engine.CurrentIndex(); got != 2 {
		t.Fatalf("index = %d, want 2", got)
	}

	// 80 stage columns are 640 pixels.
	m = update(t, m, tea.WindowSizeMsg{Width: 86, Height: testHeight})
	if !m.engine.Compact() || m.engine.SlidesVisible() != 1 || m.engine.SlidesToScroll() != 1 {
		t.Fatalf("compact = %v visible = %d scroll = %d, want compact 1/1",
			m.engine.Compact(), m.engine.SlidesVisible(), m.engine.SlidesToScroll())
	}
	if got := m.engine.CurrentIndex(); got != 2 {
		t.Fatalf("index after resize = %d, want 2", got)
	}

	m = update(t, m, keyRunes("l"))
	if got := m.engine.CurrentIndex(); got != 3 {
		t.Fatalf("compact step index = %d, want 3", got)
	}
}

func TestMouse_DragCommitsOneStep(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(1, 1))

	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 100, 5))
	if !m.drag.Active() {
		t.Fatalf("press on the stage did not start a drag")
	}
	// 70 cells is 560 pixels, far past the commit threshold.
	m = update(t, m, mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 30, 5))
	m = update(t, m, mouse(tea.MouseActionRelease, tea.MouseButtonNone, 30, 5))

	if got := m.engine.CurrentIndex(); got != 1 {
		t.Fatalf("index = %d, want exactly one step to 1", got)
	}
	if m.drag.Active() {
		t.Fatalf("drag still active after release")
	}
}

func TestMouse_ShortDragSnapsBack(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(1, 1))
	m = update(t, m, keyRunes("l"))

	// 20 cells is 160 pixels, under a fifth of 960.
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 40, 5))
	m = update(t, m, mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 60, 5))
	if m.stage.offset == m.engine.Offset() {
		t.Fatalf("stage did not follow the drag")
	}
	m = update(t, m, mouse(tea.MouseActionRelease, tea.MouseButtonNone, 60, 5))

	if got := m.engine.CurrentIndex(); got != 1 {
		t.Fatalf("index = %d, want 1", got)
	}
	if m.stage.offset != m.engine.Offset() {
		t.Fatalf("stage offset = %v, want snapped back to %v", m.stage.offset, m.engine.Offset())
	}
}

func TestMouse_ButtonsClick(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(1, 1))

	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, testWidth-1, 5))
	if m.drag.Active() {
		t.Fatalf("press on the next button started a drag")
	}
	m = update(t, m, mouse(tea.MouseActionRelease, tea.MouseButtonNone, testWidth-1, 5))
	if got := m.engine.CurrentIndex(); got != 1 {
		t.Fatalf("index after next click = %d, want 1", got)
	}

	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 0, 5))
	m = update(t, m, mouse(tea.MouseActionRelease, tea.MouseButtonNone, 0, 5))
	if got := m.engine.CurrentIndex(); got != 0 {
		t.Fatalf("index after prev click = %d, want 0", got)
	}
}

func TestMouse_HiddenButtonIsNotClickable(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(1, 1))
	if m.nav.canPrev {
		t.Fatalf("prev button visible at the first slide")
	}

	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 0, 5))
	if m.drag.Active() {
		t.Fatalf("press in the button column started a drag")
	}
	m = update(t, m, mouse(tea.MouseActionRelease, tea.MouseButtonNone, 0, 5))
	if got := m.engine.CurrentIndex(); got != 0 {
		t.Fatalf("index = %d, want 0", got)
	}
}

func TestMouse_DragOnlyStartsOnStage(t *testing.T) {
	rows := []struct {
		name string
		y    int
	}{
		{"header", 0},
		{"pager", testHeight - 2},
		{"footer", testHeight - 1},
	}
	for _, row := range rows {
		t.Run(row.name, func(t *testing.T) {
			m, _ := newTestModel(t, 5, testConfig(1, 1))

			m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 100, row.y))
			if m.drag.Active() {
				t.Fatalf("press on row %d started a drag", row.y)
			}
			m = update(t, m, mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 20, row.y))
			m = update(t, m, mouse(tea.MouseActionRelease, tea.MouseButtonNone, 20, row.y))
			if got := m.engine.CurrentIndex(); got != 0 {
				t.Fatalf("index after dragging on row %d = %d, want 0", row.y, got)
			}
		})
	}
}

func TestMouse_ReleaseOffButtonCancelsClick(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(1, 1))

	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, testWidth-1, 5))
	m = update(t, m, mouse(tea.MouseActionRelease, tea.MouseButtonNone, 50, 5))
	if got := m.engine.CurrentIndex(); got != 0 {
		t.Fatalf("index = %d, want 0", got)
	}
}

func TestMouse_WheelNavigates(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(1, 1))

	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 50, 5))
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonWheelRight, 50, 5))
	if got := m.engine.CurrentIndex(); got != 2 {
		t.Fatalf("index = %d, want 2", got)
	}
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonWheelUp, 50, 5))
	if got := m.engine.CurrentIndex(); got != 1 {
		t.Fatalf("index = %d, want 1", got)
	}
}

func TestJump_FuzzyMatchesTitle(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(1, 1))

	m = update(t, m, keyRunes("/"))
	if !m.jump.active {
		t.Fatalf("jump prompt did not open")
	}
	m = update(t, m, keyRunes("gam"))
	if len(m.jump.matches) == 0 || m.jump.matches[0].Str != "Gamma" {
		t.Fatalf("matches = %#v, want Gamma first", m.jump.matches)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.jump.active {
		t.Fatalf("jump prompt still open after enter")
	}
	if got := m.engine.CurrentIndex(); got != 2 {
		t.Fatalf("index = %d, want 2", got)
	}
}

func TestJump_EscapeLeavesIndex(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(1, 1))

	m = update(t, m, keyRunes("/"))
	m = update(t, m, keyRunes("eps"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.jump.active {
		t.Fatalf("jump prompt still open after esc")
	}
	if got := m.engine.CurrentIndex(); got != 0 {
		t.Fatalf("index = %d, want 0", got)
	}
}

func TestJump_ClampsToLastWindow(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(2, 1))

	m = update(t, m, keyRunes("/"))
	m = update(t, m, keyRunes("epsilon"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.engine.CurrentIndex(); got != 3 {
		t.Fatalf("index = %d, want last window 3", got)
	}
}

func TestSnapshot_ReloadKeepsIndex(t *testing.T) {
	m, store := newTestModel(t, 5, testConfig(1, 1))
	for i := 0; i < 3; i++ {
		m = update(t, m, keyRunes("l"))
	}

	store.Update(testDeck(6), nil)
	m = update(t, m, snapshotMsg(store.Snapshot()))
	if got := m.engine.ItemCount(); got != 6 {
		t.Fatalf("ItemCount = %d, want 6", got)
	}
	if got := m.engine.CurrentIndex(); got != 3 {
		t.Fatalf("index after reload = %d, want 3", got)
	}

	store.Update(testDeck(2), nil)
	m = update(t, m, snapshotMsg(store.Snapshot()))
	if got := m.engine.CurrentIndex(); got != 1 {
		t.Fatalf("index after shrinking reload = %d, want 1", got)
	}
	if m.nav.canNext {
		t.Fatalf("next button visible on the last slide")
	}
}

func TestSnapshot_FailedReloadKeepsDeck(t *testing.T) {
	m, store := newTestModel(t, 5, testConfig(1, 1))
	m = update(t, m, keyRunes("l"))
	engine := m.engine

	store.Update(nil, errors.New("parse failed"))
	m = update(t, m, snapshotMsg(store.Snapshot()))
	if m.engine != engine {
		t.Fatalf("failed reload rebuilt the engine")
	}
	if got := m.engine.CurrentIndex(); got != 1 {
		t.Fatalf("index = %d, want 1", got)
	}
	if view := m.View(); !strings.Contains(view, "reload failed") {
		t.Fatalf("View does not mention the failed reload")
	}
}

func TestView_FillsTerminal(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(2, 1))

	lines := strings.Split(m.View(), "\n")
	if len(lines) != testHeight {
		t.Fatalf("View has %d lines, want %d", len(lines), testHeight)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w > testWidth {
			t.Fatalf("line %d is %d columns wide, want at most %d", i, w, testWidth)
		}
	}
	if !strings.Contains(lines[0], "1–2 of 5") {
		t.Fatalf("header = %q, want it to show 1–2 of 5", lines[0])
	}
}

func TestView_HeaderMarksLooping(t *testing.T) {
	m, _ := newTestModel(t, 5, testConfig(1, 1))
	if header := m.renderHeader(); strings.Contains(header, "loop") {
		t.Fatalf("header = %q, want no loop marker", header)
	}

	cfg := testConfig(1, 1)
	cfg.Loop = true
	m, _ = newTestModel(t, 5, cfg)
	if header := m.renderHeader(); !strings.Contains(header, "loop") {
		t.Fatalf("header = %q, want a loop marker", header)
	}
}

func TestView_LoadingBeforeSize(t *testing.T) {
	m, err := New(Options{Config: testConfig(1, 1), PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View = %q, want Loading...", got)
	}
	if m.Init() != nil {
		t.Fatalf("Init without a store returned a command")
	}
}

func TestHelp_ToggleWithAnyKey(t *testing.T) {
	m, _ := newTestModel(t, 3, testConfig(1, 1))

	m = update(t, m, keyRunes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m = update(t, m, keyRunes("l"))
	if m.showHelp {
		t.Fatalf("help overlay still shown")
	}
	if got := m.engine.CurrentIndex(); got != 0 {
		t.Fatalf("closing help moved the carousel to %d", got)
	}
}

func TestPrefs_CyclesAreSaved(t *testing.T) {
	m, _ := newTestModel(t, 3, testConfig(1, 1))

	m = update(t, m, keyRunes("T"))
	m = update(t, m, keyRunes("M"))
	if m.theme.Name != "Slate" || m.markdown != "dark" {
		t.Fatalf("theme = %q markdown = %q, want Slate dark", m.theme.Name, m.markdown)
	}

	p := prefs.Load(m.prefsPath)
	if p.Theme != "Slate" || p.Markdown != "dark" {
		t.Fatalf("saved prefs = %#v, want Slate dark", p)
	}
}

func TestTransition_FramesReachTarget(t *testing.T) {
	cfg := testConfig(1, 1)
	cfg.TransitionFrames = 3
	m, _ := newTestModel(t, 3, cfg)

	next, cmd := m.Update(keyRunes("l"))
	m = next.(Model)
	if cmd == nil || !m.stage.animating() {
		t.Fatalf("move did not schedule a transition")
	}
	if _, again := m.Update(keyRunes("?")); again != nil {
		t.Fatalf("opening help scheduled another frame")
	}

	for i := 0; i < 3; i++ {
		m = update(t, m, frameMsg(time.Now()))
	}
	if m.stage.animating() || m.stage.offset != m.engine.Offset() {
		t.Fatalf("offset = %v animating = %v, want settled at %v", m.stage.offset, m.stage.animating(), m.engine.Offset())
	}
}
