// Package ui provides the terminal host for the carousel.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It owns no navigation logic of its own: a
// carousel.Engine decides where the carousel is, a gesture.Controller turns
// mouse drags into engine calls, and the UI renders what they report.
//
//   - stage.go: the viewport. Implements carousel.Renderer and
//     carousel.Metrics, animates transforms and cuts the visible window out of
//     the slide strip
//   - nav.go: button visibility and the dots pager, kept in sync by a move
//     listener
//   - jump.go: the "/" prompt that fuzzy-matches slide titles
//   - app.go: the Model, input routing and screen composition
//
// # Pixels
//
// The engine and the gesture controller work in pixels. The stage converts
// terminal cells using the configured cell size, so a 100 column viewport is
// 800 pixels wide with the default 8 pixel cells. Mouse positions are
// converted the same way before they reach the gesture controller.
//
// # Event Flow
//
//  1. tea.WindowSizeMsg resizes the stage and fires the resize signal the
//     engine listens on
//  2. Keys, buttons and the wheel call Next, Prev and GoTo on the engine
//  3. Left press, motion and release drive the gesture controller
//  4. A poll tick reads the state.Store; a new deck version rebuilds the
//     engine at the nearest reachable index
//  5. Transforms requested by the engine animate over frame ticks
//
// # Key Bindings
//
//   - →/l/n, ←/h/p: Next and previous
//   - g/home, G/end: First slide and last window
//   - /: Jump to a slide by title
//   - T: Cycle theme
//   - M: Cycle markdown style
//   - ?: Toggle help
//   - q or Ctrl+C: Quit
package ui
