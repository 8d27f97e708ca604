package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/carousel/internal/deck"
)

// Snapshot represents the latest deck available to the UI.
type Snapshot struct {
	Deck                deck.Deck
	HasDeck             bool
	Version             uint64 // bumped on every successful update
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsStale returns true when the last reloads kept failing.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored deck. When err is non-nil the previous deck is
// kept but the error is recorded for visibility.
func (s *Store) Update(d *deck.Deck, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if d != nil {
		s.snapshot.Deck = cloneDeck(*d)
		s.snapshot.HasDeck = true
	} else {
		s.snapshot.Deck = deck.Deck{}
		s.snapshot.HasDeck = false
	}
	s.snapshot.Version++
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Deck = cloneDeck(s.snapshot.Deck)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneDeck(d deck.Deck) deck.Deck {
	if len(d.Slides) == 0 {
		return deck.Deck{Path: d.Path}
	}
	dup := make([]deck.Slide, len(d.Slides))
	copy(dup, d.Slides)
	return deck.Deck{Path: d.Path, Slides: dup}
}
