package session

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Authenticator verifies staff credentials against the read-only staff
// store. Passwords are stored as SHA-256 hex digests.
type Authenticator struct {
	staff repository.StaffRepository
}

func NewAuthenticator(staff repository.StaffRepository) *Authenticator {
	return &Authenticator{staff: staff}
}

func (a *Authenticator) Verify(ctx context.Context, username, password string) (*domain.Staff, error) {
	staff, hash, err := a.staff.GetByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	sum := sha256.Sum256([]byte(password))
	digest := hex.EncodeToString(sum[:])
	if subtle.ConstantTimeCompare([]byte(digest), []byte(hash)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return staff, nil
}
