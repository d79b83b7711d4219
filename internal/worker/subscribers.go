package worker

import (
	"github.com/spec-kit/freelance-directory/internal/events"
)

// Subscriber attaches its handlers to a dispatcher.
type Subscriber interface {
	RegisterHandlers(dispatcher events.Dispatcher)
}

// SubscriberFunc adapts a plain function to Subscriber.
type SubscriberFunc func(dispatcher events.Dispatcher)

// RegisterHandlers calls f.
func (f SubscriberFunc) RegisterHandlers(dispatcher events.Dispatcher) {
	f(dispatcher)
}

// RegisterSubscribers wires every non-nil subscriber to the dispatcher.
func RegisterSubscribers(dispatcher events.Dispatcher, subscribers ...Subscriber) {
	if dispatcher == nil {
		return
	}
	for _, s := range subscribers {
		if s == nil {
			continue
		}
		s.RegisterHandlers(dispatcher)
	}
}
