package rooms

import (
	"context"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/repository"
)

type RoomInventory interface {
	List(ctx context.Context) ([]domain.Room, error)
	FindAvailable(ctx context.Context, roomType, checkin, checkout string) ([]domain.Room, error)
	SetStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error
	CurrentRate(ctx context.Context, roomID int64) (*domain.RoomRate, error)
	ValidType(roomType string) bool
}

type Cache interface {
	GetRooms(ctx context.Context) ([]domain.Room, error)
	SetRooms(ctx context.Context, rooms []domain.Room) error
	InvalidateRooms(ctx context.Context) error
}

// RoomService answers availability queries over the fixed inventory. The
// room type set comes from configuration, not literals scattered through
// the validation paths.
type RoomService struct {
	rooms     repository.RoomRepository
	cache     Cache
	roomTypes map[string]bool
}

func NewRoomService(rooms repository.RoomRepository, cache Cache, roomTypes []string) *RoomService {
	types := make(map[string]bool, len(roomTypes))
	for _, t := range roomTypes {
		types[t] = true
	}
	return &RoomService{rooms: rooms, cache: cache, roomTypes: types}
}

func (s *RoomService) List(ctx context.Context) ([]domain.Room, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetRooms(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetRooms(ctx, rooms)
	}
	return rooms, nil
}

// FindAvailable returns rooms of the type that are AVAILABLE and free of
// overlapping live reservations for [checkin, checkout). Availability is
// computed at query time; at hotel scale the scan is cheaper than keeping
// a calendar grid consistent.
func (s *RoomService) FindAvailable(ctx context.Context, roomType, checkin, checkout string) ([]domain.Room, error) {
	if !s.ValidType(roomType) {
		return nil, domain.Validationf("invalid room type: %s", roomType)
	}

	in, err := domain.ParseDate(checkin, "check-in date")
	if err != nil {
		return nil, err
	}
	out, err := domain.ParseDate(checkout, "check-out date")
	if err != nil {
		return nil, err
	}
	if !in.Before(out) {
		return nil, domain.Validationf("check-out must be after check-in")
	}

	return s.rooms.ListAvailable(ctx, roomType, in, out)
}

func (s *RoomService) SetStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	if !domain.ValidRoomStatus(status) {
		return domain.Validationf("invalid room status: %s", status)
	}
	if err := s.rooms.UpdateStatus(ctx, roomID, status); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateRooms(ctx)
	}
	return nil
}

func (s *RoomService) CurrentRate(ctx context.Context, roomID int64) (*domain.RoomRate, error) {
	return s.rooms.CurrentRate(ctx, roomID)
}

func (s *RoomService) ValidType(roomType string) bool {
	return s.roomTypes[roomType]
}

var _ RoomInventory = (*RoomService)(nil)
