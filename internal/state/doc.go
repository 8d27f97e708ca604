// Package state hands the current deck from the file watcher to the UI.
//
// # Overview
//
// The deck watcher runs on its own goroutine while Bubble Tea owns the UI
// goroutine. Store is the meeting point: the watcher calls Update after every
// reload, and the UI polls Snapshot on its tick.
//
//	Producer (deck.Watch):         Consumer (UI tick):
//	┌────────────────┐            ┌──────────────────┐
//	│ deck.Load()    │            │                  │
//	│      ↓         │            │                  │
//	│ store.Update() │───────────→│ store.Snapshot() │
//	│      ↓         │  (mutex)   │      ↓           │
//	│  wait event    │            │ rebuild carousel │
//	└────────────────┘            └──────────────────┘
//
// # Update Semantics
//
//	// Success: replace the deck and bump Version
//	store.Update(&d, nil)
//
//	// Failure: keep the previous deck, record the error
//	store.Update(nil, err)
//
// The UI compares Version with the one it last built a carousel for; a
// failing reload never tears down the slides already on screen.
//
// # Defensive Copying
//
// Update and Snapshot copy the slide slice so that neither side can mutate
// what the other is reading. Slides are small strings, so the copy is cheap.
//
// The zero Store is ready to use.
package state
