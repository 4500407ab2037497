package notifier

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
)

type EventType string

const (
	EventCreated   EventType = "CREATED"
	EventUpdated   EventType = "UPDATED"
	EventCancelled EventType = "CANCELLED"
)

// Event carries a snapshot of the reservation at transition time. Listeners
// must treat it as read-only.
type Event struct {
	Type        EventType
	Reservation domain.Reservation
	OccurredAt  time.Time
}

type Listener interface {
	Handle(ctx context.Context, event Event) error
}

// Notifier fans reservation events out to registered listeners.
// Registration happens once at startup; publishing iterates a snapshot of
// the listener list, and a failing listener never prevents the others from
// seeing the event or aborts the operation that published it.
type Notifier struct {
	mu        sync.RWMutex
	listeners []Listener
}

func New() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Subscribe(l Listener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, l)
}

func (n *Notifier) Publish(ctx context.Context, eventType EventType, res domain.Reservation) {
	event := Event{Type: eventType, Reservation: res, OccurredAt: time.Now()}

	n.mu.RLock()
	listeners := make([]Listener, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.RUnlock()

	for _, l := range listeners {
		n.dispatch(ctx, l, event)
	}
}

func (n *Notifier) dispatch(ctx context.Context, l Listener, event Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notifier: listener panic on %s event for %s: %v", event.Type, event.Reservation.Number, r)
		}
	}()
	if err := l.Handle(ctx, event); err != nil {
		log.Printf("notifier: listener error on %s event for %s: %v", event.Type, event.Reservation.Number, err)
	}
}
