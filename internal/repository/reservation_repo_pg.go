package repository

import (
	"context"
	"errors"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNumberTaken signals a reservation-number collision on insert. The
// caller regenerates the number and retries instead of overwriting.
var ErrNumberTaken = errors.New("reservation number already taken")

type ReservationRepository interface {
	CreateConfirmed(ctx context.Context, res *domain.Reservation) error
	GetByNumber(ctx context.Context, number string) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation, roomStatus *domain.RoomStatus) error
	UpdateStatus(ctx context.Context, number string, status domain.ReservationStatus, roomStatus *domain.RoomStatus) error
}

type PGReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &PGReservationRepository{db: db}
}

// CreateConfirmed persists a CONFIRMED reservation and occupies its room in
// one transaction. The availability decision made before this call is
// re-checked inside the transaction, so two concurrent creates racing for
// the same room cannot both commit: the loser aborts with a conflict.
func (r *PGReservationRepository) CreateConfirmed(ctx context.Context, res *domain.Reservation) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Storagef(err, "begin create reservation")
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE room SET room_status=$1 WHERE room_id=$2 AND room_status=$3`,
		domain.RoomStatusOccupied, res.RoomID, domain.RoomStatusAvailable)
	if err != nil {
		return domain.Storagef(err, "occupy room")
	}
	if cmd.RowsAffected() == 0 {
		return domain.Conflictf("room is no longer available")
	}

	var overlapping int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM reservation
		WHERE room_id=$1
		AND status NOT IN ($2, $3)
		AND NOT (checkout_date <= $4 OR checkin_date >= $5)`,
		res.RoomID, domain.ReservationStatusCancelled, domain.ReservationStatusCheckedOut,
		res.CheckinDate, res.CheckoutDate).Scan(&overlapping)
	if err != nil {
		return domain.Storagef(err, "recheck availability")
	}
	if overlapping > 0 {
		return domain.Conflictf("room is no longer available")
	}

	res.Status = domain.ReservationStatusConfirmed
	err = tx.QueryRow(ctx, `INSERT INTO reservation (reservation_number, guest_id, room_id, staff_id, checkin_date, checkout_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING reservation_id, created_at, updated_at`,
		res.Number, res.GuestID, res.RoomID, res.StaffID, res.CheckinDate, res.CheckoutDate, res.Status).
		Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrNumberTaken
		}
		return domain.Storagef(err, "insert reservation")
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Storagef(err, "commit create reservation")
	}
	return nil
}

const reservationColumns = `res.reservation_id, res.reservation_number, res.guest_id, res.room_id, res.staff_id,
	res.checkin_date, res.checkout_date, res.status, res.created_at, res.updated_at,
	g.guest_name, r.room_number, s.fullname`

const reservationJoins = ` FROM reservation res
	JOIN guest g ON res.guest_id = g.guest_id
	JOIN room r ON res.room_id = r.room_id
	JOIN staff s ON res.staff_id = s.staff_id`

func (r *PGReservationRepository) GetByNumber(ctx context.Context, number string) (*domain.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reservationColumns+reservationJoins+` WHERE res.reservation_number=$1`, number)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("reservation not found: %s", number)
		}
		return nil, domain.Storagef(err, "load reservation")
	}
	return res, nil
}

func (r *PGReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+reservationJoins+` ORDER BY res.created_at DESC`)
	if err != nil {
		return nil, domain.Storagef(err, "list reservations")
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *PGReservationRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+reservationJoins+` WHERE res.status=$1 ORDER BY res.created_at DESC`, status)
	if err != nil {
		return nil, domain.Storagef(err, "list reservations by status")
	}
	defer rows.Close()
	return collectReservations(rows)
}

// Update writes the reservation's dates and status; when roomStatus is
// non-nil the room row is updated in the same transaction so a status
// transition and its room side effect land together or not at all.
func (r *PGReservationRepository) Update(ctx context.Context, res *domain.Reservation, roomStatus *domain.RoomStatus) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Storagef(err, "begin update reservation")
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE reservation SET checkin_date=$1, checkout_date=$2, status=$3, updated_at=now()
		WHERE reservation_number=$4`,
		res.CheckinDate, res.CheckoutDate, res.Status, res.Number)
	if err != nil {
		return domain.Storagef(err, "update reservation")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("reservation not found: %s", res.Number)
	}

	if roomStatus != nil {
		if _, err := tx.Exec(ctx, `UPDATE room SET room_status=$1 WHERE room_id=$2`, *roomStatus, res.RoomID); err != nil {
			return domain.Storagef(err, "sync room status")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Storagef(err, "commit update reservation")
	}
	return nil
}

func (r *PGReservationRepository) UpdateStatus(ctx context.Context, number string, status domain.ReservationStatus, roomStatus *domain.RoomStatus) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Storagef(err, "begin update status")
	}
	defer tx.Rollback(ctx)

	var roomID int64
	err = tx.QueryRow(ctx, `UPDATE reservation SET status=$1, updated_at=now() WHERE reservation_number=$2 RETURNING room_id`,
		status, number).Scan(&roomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFoundf("reservation not found: %s", number)
		}
		return domain.Storagef(err, "update reservation status")
	}

	if roomStatus != nil {
		if _, err := tx.Exec(ctx, `UPDATE room SET room_status=$1 WHERE room_id=$2`, *roomStatus, roomID); err != nil {
			return domain.Storagef(err, "sync room status")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Storagef(err, "commit update status")
	}
	return nil
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	err := row.Scan(&res.ID, &res.Number, &res.GuestID, &res.RoomID, &res.StaffID,
		&res.CheckinDate, &res.CheckoutDate, &res.Status, &res.CreatedAt, &res.UpdatedAt,
		&res.GuestName, &res.RoomNumber, &res.StaffName)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func collectReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	list := make([]domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, domain.Storagef(err, "scan reservation")
		}
		list = append(list, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storagef(err, "iterate reservations")
	}
	return list, nil
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
