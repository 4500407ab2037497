package repository

import (
	"context"
	"errors"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GuestRepository interface {
	GetByContact(ctx context.Context, contact string) (*domain.Guest, error)
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
	Create(ctx context.Context, guest *domain.Guest) error
}

type PGGuestRepository struct {
	db *pgxpool.Pool
}

func NewGuestRepository(db *pgxpool.Pool) GuestRepository {
	return &PGGuestRepository{db: db}
}

func (r *PGGuestRepository) GetByContact(ctx context.Context, contact string) (*domain.Guest, error) {
	row := r.db.QueryRow(ctx, `SELECT guest_id, guest_name, address, contact_number, email, created_at FROM guest WHERE contact_number=$1`, contact)
	return scanGuest(row)
}

func (r *PGGuestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	row := r.db.QueryRow(ctx, `SELECT guest_id, guest_name, address, contact_number, email, created_at FROM guest WHERE guest_id=$1`, id)
	return scanGuest(row)
}

func (r *PGGuestRepository) Create(ctx context.Context, guest *domain.Guest) error {
	err := r.db.QueryRow(ctx, `INSERT INTO guest (guest_name, address, contact_number, email)
		VALUES ($1, $2, $3, $4)
		RETURNING guest_id, created_at`, guest.Name, guest.Address, guest.ContactNumber, guest.Email).
		Scan(&guest.ID, &guest.CreatedAt)
	if err != nil {
		return domain.Storagef(err, "create guest")
	}
	return nil
}

func scanGuest(row pgx.Row) (*domain.Guest, error) {
	var g domain.Guest
	if err := row.Scan(&g.ID, &g.Name, &g.Address, &g.ContactNumber, &g.Email, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("guest not found")
		}
		return nil, domain.Storagef(err, "load guest")
	}
	return &g, nil
}

var _ GuestRepository = (*PGGuestRepository)(nil)
