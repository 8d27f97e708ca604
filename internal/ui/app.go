package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/carousel/internal/carousel"
	"github.com/five82/carousel/internal/config"
	"github.com/five82/carousel/internal/deck"
	"github.com/five82/carousel/internal/gesture"
	"github.com/five82/carousel/internal/logging"
	"github.com/five82/carousel/internal/prefs"
	"github.com/five82/carousel/internal/state"
)

// Options configures the UI.
type Options struct {
	Context       context.Context
	Store         *state.Store
	Config        config.Config
	PollTick      time.Duration
	ThemeName     string
	MarkdownStyle string
	PrefsPath     string
}

type button int

const (
	noButton button = iota
	prevButton
	nextButton
)

// Model is the root application state for Bubble Tea. The carousel pieces
// are held by pointer so every copy of the model drives the same engine.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	cfg       config.Config
	prefsPath string
	pollTick  time.Duration
	log       *logrus.Entry

	// UI state
	theme    Theme
	markdown string
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool
	jump     jumpState
	pressed  button

	// Data state
	snapshot state.Snapshot
	version  uint64

	// Carousel
	stage  *stage
	signal *carousel.Signal
	engine *carousel.Engine
	drag   *gesture.Controller
	nav    *navState
	render *deck.Renderer
}

// New creates a new Bubble Tea model showing the store's current deck.
func New(opts Options) (Model, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultPollInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	markdown := opts.MarkdownStyle
	if markdown == "" {
		markdown = opts.Config.MarkdownStyle
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		cfg:       opts.Config,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		log:       logging.NewLogger("ui"),
		theme:     GetTheme(themeName),
		markdown:  markdown,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		jump:      newJumpState(),
		stage:     newStage(opts.Config.CellWidth, opts.Config.CellHeight, opts.Config.TransitionFrames),
		signal:    &carousel.Signal{},
		nav:       newNavState(),
		render:    deck.NewRenderer(markdown),
	}

	if m.store != nil {
		m.snapshot = m.store.Snapshot()
		m.version = m.snapshot.Version
	}
	if err := m.rebuild(m.snapshot.Deck.Len(), 0); err != nil {
		return Model{}, err
	}
	return m, nil
}

// rebuild replaces the engine for a deck of count slides and moves as close
// to keep as the new deck allows.
func (m *Model) rebuild(count, keep int) error {
	if m.engine != nil {
		m.engine.Close()
	}

	m.stage.SetTransitionEnabled(false)
	defer m.stage.SetTransitionEnabled(true)

	e, err := carousel.New(count, m.cfg.CarouselOptions(), m.stage, m.stage, m.nav.onMove)
	if err != nil {
		return fmt.Errorf("build carousel: %w", err)
	}
	e.Listen(m.signal)
	m.nav.attach(e)
	m.engine = e
	m.drag = gesture.New(e, m.stage, m.stage)

	if keep > 0 {
		e.GoTo(reachable(e, keep))
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return tickCmd(m.pollTick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.animate()

	case frameMsg:
		m.stage.ticking = false
		m.stage.advance()
		return m, m.animate()

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.pollTick))

	case snapshotMsg:
		return m.applySnapshot(state.Snapshot(msg))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderStage())
	b.WriteString("\n")
	b.WriteString(m.renderPager())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true
	m.help.Width = max(width-2, 0)
	m.stage.resize(width-2*buttonWidth, height-chromeRows)
	m.signal.Fire()
	m.nav.refresh()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.jump.active {
		return m.handleJumpKey(msg)
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.engine.Next()

	case key.Matches(msg, m.keys.Prev):
		m.engine.Prev()

	case key.Matches(msg, m.keys.First):
		m.engine.GoTo(0)

	case key.Matches(msg, m.keys.Last):
		m.engine.GoTo(lastWindow(m.engine))

	case key.Matches(msg, m.keys.Jump):
		return m, m.jump.open()

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.CycleMarkdown):
		m.markdown = nextMarkdownStyle(m.markdown)
		m.render = deck.NewRenderer(m.markdown)
		m.savePrefs()
		return m, nil
	}

	return m, m.animate()
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.jump.close()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if index, ok := m.jump.target(); ok {
			m.engine.GoTo(reachable(m.engine, index))
		}
		m.jump.close()
		return m, m.animate()

	case key.Matches(msg, m.keys.Up):
		m.jump.move(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.jump.move(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.jump.input, cmd = m.jump.input.Update(msg)
	m.jump.filter(m.snapshot.Deck.Titles())
	return m, cmd
}

// handleMouse maps terminal mouse events onto buttons, the wheel and drags.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || m.jump.active {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			m.engine.Next()
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			m.engine.Prev()
		case tea.MouseButtonLeft:
			if b := m.buttonAt(msg.X, msg.Y); b != noButton {
				m.pressed = b
				return m, nil
			}
			if m.onStage(msg.X, msg.Y) {
				m.drag.Start(m.sample(msg))
			}
		}

	case tea.MouseActionMotion:
		if m.drag.Active() {
			m.drag.Move(m.sample(msg))
		}

	case tea.MouseActionRelease:
		if m.pressed != noButton {
			pressed := m.pressed
			m.pressed = noButton
			if m.buttonAt(msg.X, msg.Y) == pressed {
				m.click(pressed)
			}
			break
		}
		if m.drag.Active() {
			m.drag.End()
		}
	}

	return m, m.animate()
}

func (m Model) sample(msg tea.MouseMsg) gesture.Sample {
	return gesture.Sample{
		X:       float64(msg.X) * m.cfg.CellWidth,
		Y:       float64(msg.Y) * m.cfg.CellHeight,
		Touches: 1,
	}
}

// onStage reports whether a cell lies on the slides, between the buttons.
func (m Model) onStage(x, y int) bool {
	return y >= headerRows && y < headerRows+m.stage.rows &&
		x >= buttonWidth && x < m.width-buttonWidth
}

// buttonAt returns the visible button under a cell.
func (m Model) buttonAt(x, y int) button {
	if y < headerRows || y >= headerRows+m.stage.rows {
		return noButton
	}
	switch {
	case x < buttonWidth && m.nav.canPrev:
		return prevButton
	case x >= m.width-buttonWidth && m.nav.canNext:
		return nextButton
	}
	return noButton
}

func (m Model) click(b button) {
	switch b {
	case prevButton:
		m.engine.Prev()
	case nextButton:
		m.engine.Next()
	}
}

// animate schedules the next transition frame if one is due and none is
// already pending.
func (m Model) animate() tea.Cmd {
	if !m.stage.animating() || m.stage.ticking {
		return nil
	}
	m.stage.ticking = true
	return frameCmd()
}

func (m Model) applySnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	m.snapshot = snap
	if snap.Version == m.version {
		if snap.LastError != nil {
			m.log.WithError(snap.LastError).Debug("deck reload failing, keeping previous deck")
		}
		return m, nil
	}
	m.version = snap.Version

	keep := m.engine.CurrentIndex()
	m.render.Reset()
	if err := m.rebuild(snap.Deck.Len(), keep); err != nil {
		m.log.WithError(err).Error("rebuild carousel")
		return m, nil
	}
	m.log.WithFields(logrus.Fields{
		"slides": snap.Deck.Len(),
		"index":  m.engine.CurrentIndex(),
	}).Info("deck reloaded")
	return m, m.animate()
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Markdown: m.markdown}); err != nil {
		m.log.WithError(err).Warn("save preferences")
	}
}

// Rendering

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	title := "carousel"
	if m.snapshot.Deck.Path != "" {
		title += " · " + m.snapshot.Deck.Path
	}

	count := m.engine.ItemCount()
	position := "no slides"
	if count > 0 {
		first := m.nav.index + 1
		last := min(m.nav.index+m.engine.SlidesVisible(), count)
		if last > first {
			position = fmt.Sprintf("%d–%d of %d", first, last, count)
		} else {
			position = fmt.Sprintf("%d of %d", first, count)
		}
	}
	if m.engine.Compact() {
		position += " · compact"
	}
	if m.engine.Loop() {
		position += " · loop"
	}

	right := styles.MutedText.Render(position)
	gap := max(m.width-2-lipgloss.Width(title)-lipgloss.Width(right), 1)
	return styles.Header.Width(m.width).MaxWidth(m.width).MaxHeight(1).
		Render(styles.Text.Bold(true).Render(title) + strings.Repeat(" ", gap) + right)
}

func (m Model) renderStage() string {
	styles := m.theme.Styles()
	body := m.stage.view(m.engine.ItemCount(), m.renderSlide)
	if body == "" {
		return ""
	}

	lines := strings.Split(body, "\n")
	middle := len(lines) / 2
	blank := strings.Repeat(" ", buttonWidth)
	prev := blank
	next := blank
	if m.nav.canPrev {
		prev = styles.Button.Width(buttonWidth).Align(lipgloss.Center).Render("‹")
	}
	if m.nav.canNext {
		next = styles.Button.Width(buttonWidth).Align(lipgloss.Center).Render("›")
	}

	for i, line := range lines {
		if i == middle {
			lines[i] = prev + line + next
			continue
		}
		lines[i] = blank + line + blank
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSlide(index, width, height int) string {
	styles := m.theme.Styles()
	frame := styles.Slide.GetHorizontalFrameSize()
	content := m.render.Render(m.snapshot.Deck, index, max(width-frame, 1))
	return styles.Slide.
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		MaxHeight(height).
		Render(content)
}

func (m Model) renderPager() string {
	styles := m.theme.Styles()
	if m.engine.ItemCount() == 0 {
		return ""
	}
	dots := styles.AccentText.Render(m.nav.pagerView(m.stage.cols))
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, dots)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var content string
	switch {
	case m.jump.active:
		content = m.jump.view(styles) + "  " + m.help.ShortHelpView(m.keys.jumpHelp())
	case m.snapshot.LastError != nil:
		label := "reload failed: "
		if m.snapshot.IsStale() {
			label = "reload failing: "
		}
		content = styles.DangerText.Render(label + m.snapshot.LastError.Error())
	case m.engine.ItemCount() == 0:
		content = styles.WarningText.Render("deck is empty") + "  " + m.help.View(m.keys)
	default:
		content = m.help.View(m.keys)
	}
	return styles.Footer.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(content)
}

// Messages

type tickMsg time.Time

type frameMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(m.ctx),
	)
	final, err := p.Run()
	if fm, ok := final.(Model); ok && fm.engine != nil {
		fm.engine.Close()
	}
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
