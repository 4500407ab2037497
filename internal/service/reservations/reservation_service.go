package reservations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/notifier"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/repository"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/guests"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/rooms"
	"github.com/google/uuid"
)

type ReservationLedger interface {
	Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	Update(ctx context.Context, number string, patch UpdateReservationInput) (*domain.Reservation, error)
	Cancel(ctx context.Context, number string) error
	GetByNumber(ctx context.Context, number string) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Reservation, error)
}

type Cache interface {
	AcquireRoomHold(ctx context.Context, roomID int64, ttl time.Duration) (bool, error)
	ReleaseRoomHold(ctx context.Context, roomID int64) error
}

type Notifier interface {
	Publish(ctx context.Context, eventType notifier.EventType, res domain.Reservation)
}

type CreateReservationInput struct {
	GuestName     string `json:"guest_name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	RoomType      string `json:"room_type"`
	CheckinDate   string `json:"checkin_date"`
	CheckoutDate  string `json:"checkout_date"`
	StaffID       int64  `json:"-"`
}

// UpdateReservationInput patches a reservation; nil fields are untouched.
type UpdateReservationInput struct {
	CheckinDate  *string `json:"checkin_date"`
	CheckoutDate *string `json:"checkout_date"`
	Status       *string `json:"status"`
}

const numberAttempts = 3

// ReservationService owns the reservation state machine and is the only
// writer of reservation status.
type ReservationService struct {
	reservations  repository.ReservationRepository
	inventory     rooms.RoomInventory
	directory     guests.GuestDirectory
	cache         Cache
	events        Notifier
	holdTTL       time.Duration
	maxStayNights int
}

func NewReservationService(
	reservations repository.ReservationRepository,
	inventory rooms.RoomInventory,
	directory guests.GuestDirectory,
	cache Cache,
	events Notifier,
	holdTTL time.Duration,
	maxStayNights int,
) *ReservationService {
	return &ReservationService{
		reservations:  reservations,
		inventory:     inventory,
		directory:     directory,
		cache:         cache,
		events:        events,
		holdTTL:       holdTTL,
		maxStayNights: maxStayNights,
	}
}

// Create walks the full booking sequence: validate, find a room, resolve
// the guest, persist CONFIRMED and occupy the room. The room is held in
// the cache while the transaction commits; the repository re-checks
// availability inside the transaction, so a concurrent create racing for
// the same room loses with a conflict rather than double-booking.
func (s *ReservationService) Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error) {
	if err := guests.Validate(strings.TrimSpace(input.GuestName), strings.TrimSpace(input.ContactNumber), strings.TrimSpace(input.Email)); err != nil {
		return nil, err
	}

	checkin, checkout, err := s.validateStay(input.CheckinDate, input.CheckoutDate)
	if err != nil {
		return nil, err
	}
	if !s.inventory.ValidType(input.RoomType) {
		return nil, domain.Validationf("invalid room type: %s", input.RoomType)
	}

	available, err := s.inventory.FindAvailable(ctx, input.RoomType, input.CheckinDate, input.CheckoutDate)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, domain.Conflictf("no rooms available: no %s rooms free for the selected dates", input.RoomType)
	}

	// First room of the inventory's stable ordering.
	room := available[0]

	guest, err := s.directory.FindOrCreate(ctx, input.GuestName, input.Address, input.ContactNumber, input.Email)
	if err != nil {
		return nil, err
	}

	locked := false
	if s.cache != nil {
		ok, err := s.cache.AcquireRoomHold(ctx, room.ID, s.holdTTL)
		if err != nil {
			return nil, domain.Storagef(err, "acquire room hold")
		}
		if !ok {
			return nil, domain.Conflictf("room is being booked by another request")
		}
		locked = true
	}
	defer func() {
		if locked {
			_ = s.cache.ReleaseRoomHold(ctx, room.ID)
		}
	}()

	res := &domain.Reservation{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		StaffID:      input.StaffID,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		GuestName:    guest.Name,
		RoomNumber:   room.RoomNumber,
	}

	for attempt := 0; attempt < numberAttempts; attempt++ {
		res.Number = newReservationNumber()
		err = s.reservations.CreateConfirmed(ctx, res)
		if !errors.Is(err, repository.ErrNumberTaken) {
			break
		}
	}
	if errors.Is(err, repository.ErrNumberTaken) {
		return nil, domain.Storagef(err, "could not allocate a unique reservation number")
	}
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, notifier.EventCreated, *res)
	return res, nil
}

func (s *ReservationService) Update(ctx context.Context, number string, patch UpdateReservationInput) (*domain.Reservation, error) {
	res, err := s.reservations.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if res.Status.Terminal() {
		return nil, domain.Conflictf("cannot update a %s reservation", res.Status)
	}

	if patch.CheckinDate != nil {
		checkin, err := domain.ParseDate(*patch.CheckinDate, "check-in date")
		if err != nil {
			return nil, err
		}
		if checkin.Before(domain.Today()) {
			return nil, domain.Validationf("check-in date cannot be in the past")
		}
		res.CheckinDate = checkin
	}
	if patch.CheckoutDate != nil {
		checkout, err := domain.ParseDate(*patch.CheckoutDate, "check-out date")
		if err != nil {
			return nil, err
		}
		res.CheckoutDate = checkout
	}
	if !res.CheckoutDate.After(res.CheckinDate) {
		return nil, domain.Validationf("check-out must be after check-in")
	}

	var roomStatus *domain.RoomStatus
	if patch.Status != nil {
		status := domain.ReservationStatus(*patch.Status)
		if !domain.ValidReservationStatus(status) {
			return nil, domain.Validationf("invalid status value: %s", *patch.Status)
		}
		res.Status = status
		roomStatus = roomSideEffect(status)
	}

	if err := s.reservations.Update(ctx, res, roomStatus); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, notifier.EventUpdated, *res)
	return res, nil
}

func (s *ReservationService) Cancel(ctx context.Context, number string) error {
	res, err := s.reservations.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	if res.Status == domain.ReservationStatusCheckedOut {
		return domain.Conflictf("cannot cancel a checked-out reservation")
	}
	if res.Status == domain.ReservationStatusCancelled {
		return domain.Conflictf("reservation is already cancelled")
	}

	released := domain.RoomStatusAvailable
	if err := s.reservations.UpdateStatus(ctx, number, domain.ReservationStatusCancelled, &released); err != nil {
		return err
	}

	res.Status = domain.ReservationStatusCancelled
	s.events.Publish(ctx, notifier.EventCancelled, *res)
	return nil
}

func (s *ReservationService) GetByNumber(ctx context.Context, number string) (*domain.Reservation, error) {
	return s.reservations.GetByNumber(ctx, number)
}

func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.reservations.List(ctx)
}

func (s *ReservationService) ListByStatus(ctx context.Context, status string) ([]domain.Reservation, error) {
	st := domain.ReservationStatus(status)
	if !domain.ValidReservationStatus(st) {
		return nil, domain.Validationf("invalid status value: %s", status)
	}
	return s.reservations.ListByStatus(ctx, st)
}

func (s *ReservationService) validateStay(checkinStr, checkoutStr string) (time.Time, time.Time, error) {
	checkin, err := domain.ParseDate(checkinStr, "check-in date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	checkout, err := domain.ParseDate(checkoutStr, "check-out date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if checkin.Before(domain.Today()) {
		return time.Time{}, time.Time{}, domain.Validationf("check-in date cannot be in the past")
	}
	if !checkout.After(checkin) {
		return time.Time{}, time.Time{}, domain.Validationf("check-out must be after check-in")
	}
	if int(checkout.Sub(checkin).Hours()/24) > s.maxStayNights {
		return time.Time{}, time.Time{}, domain.Validationf("stay cannot exceed %d nights", s.maxStayNights)
	}
	return checkin, checkout, nil
}

// roomSideEffect maps a reservation transition to the room status it
// implies; CONFIRMED implies none.
func roomSideEffect(status domain.ReservationStatus) *domain.RoomStatus {
	switch status {
	case domain.ReservationStatusCheckedIn:
		occupied := domain.RoomStatusOccupied
		return &occupied
	case domain.ReservationStatusCheckedOut, domain.ReservationStatusCancelled:
		available := domain.RoomStatusAvailable
		return &available
	}
	return nil
}

func newReservationNumber() string {
	return "RES-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

var _ ReservationLedger = (*ReservationService)(nil)
