// Package app provides the orchestration layer for the carousel application.
//
// # Overview
//
// This package wires together configuration, logging, the deck, the file
// watcher and the UI. It is the composition root where all dependencies are
// initialized and connected.
//
// # Architecture
//
//  1. Load the config from ~/.config/carousel/config.toml and apply command
//     line overrides
//  2. Validate slide counts before anything is drawn
//  3. Point logging at the log file
//  4. Load preferences and the deck
//  5. Create the shared state.Store and launch the watcher goroutine
//  6. Start the TUI and block until the user exits or the context cancels
//
// # Components
//
//   - app.go: Run, Options and command line overrides
//   - watcher.go: Background goroutine that reloads the deck into the store
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()    Read config, apply overrides
//	       ├─────> logging.Setup()  Log to file
//	       ├─────> deck.Load()      First deck (fatal on error)
//	       ├─────> state.Store{}    Shared state container
//	       ├─────> StartWatcher()   Launch background reloads
//	       └─────> ui.Run()         Start TUI (blocks)
//
//	Background Watcher Loop:
//	┌─────────────────────────────────────────┐
//	│ StartWatcher() goroutine                │
//	│  ├─> deck.Watch()  (fsnotify)           │
//	│  │    └─> store.Update()                │
//	│  └─> restart with backoff on failure    │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Unreadable or invalid config, including zero or negative slide counts
//   - Log file that cannot be created
//   - Missing or empty deck at startup
//
// Recoverable errors (recorded in the store, shown in the footer):
//   - A reload that fails to parse; the previous deck stays on screen
//   - A watcher that stops; it is restarted with exponential backoff
package app
