package email

import (
	"context"
	"log"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/kafka"
)

// Sender is the delivery stub the notifications worker hands events to.
// Wiring a real mail provider happens behind this type.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(_ context.Context, event kafka.ReservationEvent) error {
	log.Printf("notify guest %s: reservation %s %s (room %s, %s to %s)",
		event.GuestName, event.ReservationNumber, event.Type,
		event.RoomNumber, event.CheckinDate, event.CheckoutDate)
	return nil
}
