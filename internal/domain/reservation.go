package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusConfirmed  ReservationStatus = "CONFIRMED"
	ReservationStatusCheckedIn  ReservationStatus = "CHECKED_IN"
	ReservationStatusCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationStatusCancelled  ReservationStatus = "CANCELLED"
)

func ValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case ReservationStatusConfirmed, ReservationStatusCheckedIn,
		ReservationStatusCheckedOut, ReservationStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is allowed.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationStatusCheckedOut || s == ReservationStatusCancelled
}

type Reservation struct {
	ID           int64
	Number       string
	GuestID      int64
	RoomID       int64
	StaffID      int64
	CheckinDate  time.Time
	CheckoutDate time.Time
	Status       ReservationStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Display fields joined from guest/room/staff on reads.
	GuestName  string
	RoomNumber string
	StaffName  string
}

// Nights is the stay length in nights; checkout is exclusive.
func (r *Reservation) Nights() int {
	return int(r.CheckoutDate.Sub(r.CheckinDate).Hours() / 24)
}
