package pubsub

import "sync"

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	bus       *EventBus
	eventType string
	id        token
	once      sync.Once
}

// EventType returns the event type this subscription listens to.
func (s *Subscription) EventType() string { return s.eventType }

// Unsubscribe removes the subscription from its bus. Calling it again, or
// after the bus no longer knows the subscription, does nothing. It is also
// safe on the nil handle returned with a Subscribe error.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.bus.remove(s.eventType, s.id)
	})
}
