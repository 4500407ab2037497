package domain

import "time"

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "AVAILABLE"
	RoomStatusOccupied    RoomStatus = "OCCUPIED"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
)

func ValidRoomStatus(s RoomStatus) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}

type Room struct {
	ID          int64
	RoomNumber  string
	FloorNumber int
	RoomTypeID  int64
	TypeName    string
	Status      RoomStatus
}

// RoomRate is the per-night price for a room type over an effective window.
// EffectiveTo nil means open-ended.
type RoomRate struct {
	ID            int64
	RoomTypeID    int64
	RatePerNight  float64
	MaxOccupancy  int
	Description   string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}
