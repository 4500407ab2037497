package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository interface {
	List(ctx context.Context) ([]domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListAvailable(ctx context.Context, typeName string, checkin, checkout time.Time) ([]domain.Room, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
	CurrentRate(ctx context.Context, roomID int64) (*domain.RoomRate, error)
}

type PGRoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) RoomRepository {
	return &PGRoomRepository{db: db}
}

const roomColumns = `r.room_id, r.room_number, r.floor_number, r.room_type_id, rt.type_name, r.room_status`

func (r *PGRoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx, `SELECT `+roomColumns+` FROM room r
		JOIN room_type rt ON r.room_type_id = rt.room_type_id
		ORDER BY r.floor_number, r.room_number`)
	if err != nil {
		return nil, domain.Storagef(err, "list rooms")
	}
	defer rows.Close()
	return collectRooms(rows)
}

func (r *PGRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	row := r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM room r
		JOIN room_type rt ON r.room_type_id = rt.room_type_id
		WHERE r.room_id=$1`, id)
	var rm domain.Room
	if err := row.Scan(&rm.ID, &rm.RoomNumber, &rm.FloorNumber, &rm.RoomTypeID, &rm.TypeName, &rm.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("room not found: %d", id)
		}
		return nil, domain.Storagef(err, "load room")
	}
	return &rm, nil
}

// ListAvailable returns AVAILABLE rooms of the given type with no live
// reservation overlapping [checkin, checkout). The ordering is the stable
// tie-break callers rely on: lowest floor first, then room number.
func (r *PGRoomRepository) ListAvailable(ctx context.Context, typeName string, checkin, checkout time.Time) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx, `SELECT `+roomColumns+` FROM room r
		JOIN room_type rt ON r.room_type_id = rt.room_type_id
		WHERE rt.type_name = $1
		AND r.room_status = $2
		AND r.room_id NOT IN (
			SELECT room_id FROM reservation
			WHERE status NOT IN ($3, $4)
			AND NOT (checkout_date <= $5 OR checkin_date >= $6)
		)
		ORDER BY r.floor_number, r.room_number`,
		typeName, domain.RoomStatusAvailable,
		domain.ReservationStatusCancelled, domain.ReservationStatusCheckedOut,
		checkin, checkout)
	if err != nil {
		return nil, domain.Storagef(err, "list available rooms")
	}
	defer rows.Close()
	return collectRooms(rows)
}

func (r *PGRoomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	cmd, err := r.db.Exec(ctx, `UPDATE room SET room_status=$1 WHERE room_id=$2`, status, id)
	if err != nil {
		return domain.Storagef(err, "update room status")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("room not found: %d", id)
	}
	return nil
}

// CurrentRate resolves the rate active today for the room's type; on
// overlapping windows the most recent effective_from wins.
func (r *PGRoomRepository) CurrentRate(ctx context.Context, roomID int64) (*domain.RoomRate, error) {
	row := r.db.QueryRow(ctx, `SELECT rr.room_rate_id, rr.room_type_id, rr.rate_per_night, rr.max_occupancy, rr.description, rr.effective_from, rr.effective_to
		FROM room_rate rr
		JOIN room r ON rr.room_type_id = r.room_type_id
		WHERE r.room_id=$1
		AND rr.effective_from <= CURRENT_DATE
		AND (rr.effective_to IS NULL OR rr.effective_to >= CURRENT_DATE)
		ORDER BY rr.effective_from DESC LIMIT 1`, roomID)
	var rate domain.RoomRate
	if err := row.Scan(&rate.ID, &rate.RoomTypeID, &rate.RatePerNight, &rate.MaxOccupancy, &rate.Description, &rate.EffectiveFrom, &rate.EffectiveTo); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("no current rate configured for room %d", roomID)
		}
		return nil, domain.Storagef(err, "load room rate")
	}
	return &rate, nil
}

func collectRooms(rows pgx.Rows) ([]domain.Room, error) {
	rooms := make([]domain.Room, 0)
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.RoomNumber, &rm.FloorNumber, &rm.RoomTypeID, &rm.TypeName, &rm.Status); err != nil {
			return nil, domain.Storagef(err, "scan room")
		}
		rooms = append(rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storagef(err, "iterate rooms")
	}
	return rooms, nil
}

var _ RoomRepository = (*PGRoomRepository)(nil)
