package notifier

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/kafka"
)

// AuditLogListener appends one line per reservation event to an audit file.
type AuditLogListener struct {
	path string
}

func NewAuditLogListener(path string) *AuditLogListener {
	return &AuditLogListener{path: path}
}

func (l *AuditLogListener) Handle(_ context.Context, event Event) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	res := event.Reservation
	line := fmt.Sprintf("[%s] ACTION=%-10s | RESERVATION=%-15s | room=%s guest=%s checkin=%s checkout=%s status=%s\n",
		event.OccurredAt.Format("2006-01-02 15:04:05"), event.Type, res.Number,
		res.RoomNumber, res.GuestName,
		res.CheckinDate.Format("2006-01-02"), res.CheckoutDate.Format("2006-01-02"), res.Status)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// RoomSyncListener observes room transitions for the ops log. The ledger is
// the only writer of room status; this listener just records what happened.
type RoomSyncListener struct{}

func NewRoomSyncListener() *RoomSyncListener {
	return &RoomSyncListener{}
}

func (l *RoomSyncListener) Handle(_ context.Context, event Event) error {
	res := event.Reservation
	switch {
	case event.Type == EventCreated, res.Status == domain.ReservationStatusCheckedIn:
		log.Printf("room %s occupied by reservation %s", res.RoomNumber, res.Number)
	case res.Status == domain.ReservationStatusCheckedOut, res.Status == domain.ReservationStatusCancelled:
		log.Printf("room %s released after reservation %s (%s)", res.RoomNumber, res.Number, res.Status)
	}
	return nil
}

// KafkaListener republishes every event to a kafka topic for external
// consumers (notifications worker, downstream systems).
type KafkaListener struct {
	producer *kafka.Producer
	topics   []string
}

func NewKafkaListener(producer *kafka.Producer, topics ...string) *KafkaListener {
	return &KafkaListener{producer: producer, topics: topics}
}

func (l *KafkaListener) Handle(ctx context.Context, event Event) error {
	if l.producer == nil {
		return nil
	}
	res := event.Reservation
	payload := kafka.ReservationEvent{
		Type:              string(event.Type),
		ReservationNumber: res.Number,
		GuestName:         res.GuestName,
		RoomNumber:        res.RoomNumber,
		CheckinDate:       res.CheckinDate.Format("2006-01-02"),
		CheckoutDate:      res.CheckoutDate.Format("2006-01-02"),
		Status:            string(res.Status),
		OccurredAt:        event.OccurredAt,
	}
	for _, topic := range l.topics {
		if topic == "" {
			continue
		}
		if err := l.producer.Publish(ctx, topic, res.Number, payload); err != nil {
			return err
		}
	}
	return nil
}
