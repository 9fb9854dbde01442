package notifications

import (
	"log"
	"sync"
)

// Publisher delivers notification events to whatever transport is wired in.
// Publishing happens after the triggering mutation has committed, and a
// failed publish must never fail that mutation; callers go through Dispatch,
// which logs and swallows errors.
type Publisher interface {
	Publish(event Event) error
}

// Dispatch publishes every event, logging failures instead of returning
// them. A nil publisher drops events silently, which keeps wiring optional
// in tests and in deployments without a broker.
func Dispatch(pub Publisher, events []Event) {
	if pub == nil {
		return
	}
	for _, event := range events {
		if err := pub.Publish(event); err != nil {
			log.Printf("Warning: failed to publish %s event for order %s: %v", event.Type, event.OrderID, err)
		}
	}
}

// MemoryPublisher records published events in memory. It backs tests and
// broker-less local runs.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryPublisher creates an empty MemoryPublisher.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

// Publish records the event.
func (p *MemoryPublisher) Publish(event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// ByType returns the recorded events of one type.
func (p *MemoryPublisher) ByType(eventType string) []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []Event
	for _, event := range p.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}
