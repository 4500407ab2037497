package repository

import (
	"context"
	"errors"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StaffRepository is read-only: staff administration happens outside this
// system, the core only resolves identities for login and display names.
type StaffRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Staff, string, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

type PGStaffRepository struct {
	db *pgxpool.Pool
}

func NewStaffRepository(db *pgxpool.Pool) StaffRepository {
	return &PGStaffRepository{db: db}
}

func (r *PGStaffRepository) GetByUsername(ctx context.Context, username string) (*domain.Staff, string, error) {
	row := r.db.QueryRow(ctx, `SELECT staff_id, username, fullname, role, password_hash FROM staff WHERE username=$1`, username)
	var s domain.Staff
	var hash string
	if err := row.Scan(&s.ID, &s.Username, &s.FullName, &s.Role, &hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", domain.NotFoundf("staff not found")
		}
		return nil, "", domain.Storagef(err, "load staff")
	}
	return &s, hash, nil
}

func (r *PGStaffRepository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	row := r.db.QueryRow(ctx, `SELECT staff_id, username, fullname, role FROM staff WHERE staff_id=$1`, id)
	var s domain.Staff
	if err := row.Scan(&s.ID, &s.Username, &s.FullName, &s.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("staff not found")
		}
		return nil, domain.Storagef(err, "load staff")
	}
	return &s, nil
}

var _ StaffRepository = (*PGStaffRepository)(nil)
