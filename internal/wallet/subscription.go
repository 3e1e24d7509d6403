package wallet

import "sync/atomic"

// Subscription is the handle returned by SubscribeAccountChange.
//
// Providers cannot remove handlers, so Cancel only stops callbacks from being
// delivered; the handler itself stays registered on the provider for its lifetime.
type Subscription struct {
	cancelled atomic.Bool
}

// Cancel stops further callbacks. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.cancelled.Store(true)
}

// Active reports whether callbacks are still delivered.
func (s *Subscription) Active() bool {
	return !s.cancelled.Load()
}
