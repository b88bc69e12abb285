package reactive

import "sync"

// Subscription ends a registration made with Subscribe
type Subscription struct {
	once   sync.Once
	cancel func()
}

func newSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Dispose stops further notifications. Safe to call more than once.
func (s *Subscription) Dispose() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Bag owns a group of subscriptions that end together
type Bag struct {
	mu       sync.Mutex
	subs     []*Subscription
	disposed bool
}

// Add takes ownership of subs. Adding to a disposed bag disposes them
// immediately.
func (b *Bag) Add(subs ...*Subscription) {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		for _, s := range subs {
			s.Dispose()
		}
		return
	}
	b.subs = append(b.subs, subs...)
	b.mu.Unlock()
}

// Dispose ends every subscription in the bag
func (b *Bag) Dispose() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.disposed = true
	b.mu.Unlock()

	for _, s := range subs {
		s.Dispose()
	}
}

// Len returns the number of live subscriptions held
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
