package carousel

// Layout returns the container width as a percentage of the viewport and the
// width of one slide as a percentage of the container, such that exactly
// visible slides fill the viewport.
func Layout(itemCount, visible int) (containerPct, itemPct float64) {
	if itemCount <= 0 || visible <= 0 {
		return 0, 0
	}
	ratio := float64(itemCount) / float64(visible)
	return ratio * 100, (100 / float64(visible)) / ratio
}

// OffsetPercent is the transform, relative to the container width, that puts
// slide index at the left edge of the viewport.
func OffsetPercent(index, itemCount int) float64 {
	if itemCount <= 0 {
		return 0
	}
	return float64(index) * -100 / float64(itemCount)
}

// ResizeSignal delivers viewport resize notifications. Subscribe returns the
// function that cancels the subscription.
type ResizeSignal interface {
	Subscribe(fn func()) (cancel func())
}

// Signal is a synchronous ResizeSignal. The zero value is ready to use; it is
// not safe for concurrent use.
type Signal struct {
	next int
	subs []signalSub
}

type signalSub struct {
	id int
	fn func()
}

var _ ResizeSignal = (*Signal)(nil)

// Subscribe registers fn. Subscribers fire in registration order.
func (s *Signal) Subscribe(fn func()) func() {
	s.next++
	id := s.next
	s.subs = append(s.subs, signalSub{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Fire calls every subscriber.
func (s *Signal) Fire() {
	subs := append([]signalSub(nil), s.subs...)
	for _, sub := range subs {
		sub.fn()
	}
}

// Len reports the number of live subscriptions.
func (s *Signal) Len() int {
	return len(s.subs)
}
