package bonus

import "sync"

// EventCatalogUpdated names the change notification for transports that need a name.
const EventCatalogUpdated = "bonusDataUpdated"

// Listener is notified, without payload, after each persisted catalog mutation.
// Listeners re-read state with Repository.List.
type Listener func()

// Subscription is returned by Repository.Subscribe; Unsubscribe it on teardown.
type Subscription struct {
	id   uint64
	hub  *broadcaster
	once sync.Once
}

// Unsubscribe stops notifications. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() { s.hub.remove(s.id) })
}

type subscriber struct {
	id uint64
	fn Listener
}

type broadcaster struct {
	mu          sync.Mutex
	lastID      uint64
	subscribers []subscriber
}

func (b *broadcaster) add(fn Listener) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastID++
	b.subscribers = append(b.subscribers, subscriber{id: b.lastID, fn: fn})
	return &Subscription{id: b.lastID, hub: b}
}

func (b *broadcaster) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subscribers {
		if s.id == id {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

func (b *broadcaster) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// broadcast calls the listeners registered at call time, in subscription order.
func (b *broadcaster) broadcast() {
	b.mu.Lock()
	subs := make([]subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}
