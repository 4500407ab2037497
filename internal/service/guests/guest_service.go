package guests

import (
	"context"
	"regexp"
	"strings"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/repository"
)

type GuestDirectory interface {
	FindOrCreate(ctx context.Context, name, address, contact, email string) (*domain.Guest, error)
}

var (
	contactPattern = regexp.MustCompile(`^[0-9+-]{7,15}$`)
	emailPattern   = regexp.MustCompile(`^[\w.+-]+@[\w-]+\.[a-zA-Z]{2,}$`)
)

// GuestService deduplicates guests by contact number. Reservation creation
// is the only caller; there is no separate guest registration flow.
type GuestService struct {
	guests repository.GuestRepository
}

func NewGuestService(guests repository.GuestRepository) *GuestService {
	return &GuestService{guests: guests}
}

func (s *GuestService) FindOrCreate(ctx context.Context, name, address, contact, email string) (*domain.Guest, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	contact = strings.TrimSpace(contact)
	email = strings.TrimSpace(email)

	if err := Validate(name, contact, email); err != nil {
		return nil, err
	}

	existing, err := s.guests.GetByContact(ctx, contact)
	if err == nil {
		return existing, nil
	}
	if !domain.IsNotFound(err) {
		return nil, err
	}

	guest := &domain.Guest{
		Name:          name,
		Address:       address,
		ContactNumber: contact,
		Email:         email,
	}
	if err := s.guests.Create(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// Validate applies the directory's field rules. Exported so the ledger can
// reject a malformed guest before touching room availability.
func Validate(name, contact, email string) error {
	if len(name) < 2 {
		return domain.Validationf("guest name must be at least 2 characters")
	}
	if !contactPattern.MatchString(contact) {
		return domain.Validationf("invalid contact number (7-15 digits)")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return domain.Validationf("invalid email address")
	}
	return nil
}

var _ GuestDirectory = (*GuestService)(nil)
