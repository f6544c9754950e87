package auth

import "github.com/asaskevich/EventBus"

const sessionTopic = "auth:session"

// SessionEvent is published on every sign-in and sign-out.
type SessionEvent struct {
	Email    string
	SignedIn bool
}

// Notifier fans session changes out to in-process subscribers. Handlers run
// synchronously on the publishing goroutine.
type Notifier struct {
	bus EventBus.Bus
}

func NewNotifier() *Notifier {
	return &Notifier{bus: EventBus.New()}
}

func (n *Notifier) Publish(ev SessionEvent) {
	n.bus.Publish(sessionTopic, ev)
}

// Subscribe registers fn and returns the matching unsubscribe func, so a
// consumer can tie the subscription to its own lifetime.
func (n *Notifier) Subscribe(fn func(SessionEvent)) (func(), error) {
	if err := n.bus.Subscribe(sessionTopic, fn); err != nil {
		return nil, err
	}
	return func() { _ = n.bus.Unsubscribe(sessionTopic, fn) }, nil
}
