package repository

import (
	"context"
	"time"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepository interface {
	Occupancy(ctx context.Context, from, to time.Time) ([]domain.OccupancyRow, error)
	Revenue(ctx context.Context, from, to time.Time) ([]domain.RevenueRow, error)
	GuestHistory(ctx context.Context, from, to time.Time) ([]domain.GuestHistoryRow, error)
	StatusSummary(ctx context.Context) ([]domain.StatusCountRow, error)
}

type PGReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &PGReportRepository{db: db}
}

func (r *PGReportRepository) Occupancy(ctx context.Context, from, to time.Time) ([]domain.OccupancyRow, error) {
	rows, err := r.db.Query(ctx, `SELECT rt.type_name,
			COUNT(res.reservation_id) AS total_bookings,
			COALESCE(SUM(res.checkout_date - res.checkin_date), 0) AS total_nights,
			COUNT(DISTINCT res.room_id) AS rooms_used
		FROM reservation res
		JOIN room ro ON res.room_id = ro.room_id
		JOIN room_type rt ON ro.room_type_id = rt.room_type_id
		WHERE res.checkin_date >= $1 AND res.checkout_date <= $2
		AND res.status != $3
		GROUP BY rt.type_name ORDER BY total_bookings DESC`, from, to, domain.ReservationStatusCancelled)
	if err != nil {
		return nil, domain.Storagef(err, "occupancy report")
	}
	defer rows.Close()

	result := make([]domain.OccupancyRow, 0)
	for rows.Next() {
		var row domain.OccupancyRow
		if err := rows.Scan(&row.RoomType, &row.TotalBookings, &row.TotalNights, &row.RoomsUsed); err != nil {
			return nil, domain.Storagef(err, "scan occupancy row")
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *PGReportRepository) Revenue(ctx context.Context, from, to time.Time) ([]domain.RevenueRow, error) {
	rows, err := r.db.Query(ctx, `SELECT DATE(b.generated_at) AS bill_date,
			COUNT(b.bill_id) AS total_bills,
			SUM(b.subtotal) AS subtotal,
			SUM(b.tax_amount) AS tax_total,
			SUM(b.total_amount) AS grand_total
		FROM bill b
		WHERE b.generated_at >= $1 AND b.generated_at < $2 + INTERVAL '1 day'
		GROUP BY DATE(b.generated_at)
		ORDER BY bill_date`, from, to)
	if err != nil {
		return nil, domain.Storagef(err, "revenue report")
	}
	defer rows.Close()

	result := make([]domain.RevenueRow, 0)
	for rows.Next() {
		var row domain.RevenueRow
		if err := rows.Scan(&row.Date, &row.TotalBills, &row.Subtotal, &row.TaxTotal, &row.GrandTotal); err != nil {
			return nil, domain.Storagef(err, "scan revenue row")
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *PGReportRepository) GuestHistory(ctx context.Context, from, to time.Time) ([]domain.GuestHistoryRow, error) {
	rows, err := r.db.Query(ctx, `SELECT g.guest_id, g.guest_name, g.contact_number,
			COUNT(res.reservation_id) AS total_stays,
			COALESCE(SUM(res.checkout_date - res.checkin_date), 0) AS total_nights,
			COALESCE(SUM(b.total_amount), 0) AS total_spent
		FROM guest g
		JOIN reservation res ON g.guest_id = res.guest_id
		LEFT JOIN bill b ON res.reservation_id = b.reservation_id
		WHERE res.checkin_date >= $1 AND res.checkin_date <= $2
		AND res.status != $3
		GROUP BY g.guest_id, g.guest_name, g.contact_number
		ORDER BY total_stays DESC`, from, to, domain.ReservationStatusCancelled)
	if err != nil {
		return nil, domain.Storagef(err, "guest history report")
	}
	defer rows.Close()

	result := make([]domain.GuestHistoryRow, 0)
	for rows.Next() {
		var row domain.GuestHistoryRow
		if err := rows.Scan(&row.GuestID, &row.GuestName, &row.ContactNumber, &row.TotalStays, &row.TotalNights, &row.TotalSpent); err != nil {
			return nil, domain.Storagef(err, "scan guest history row")
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *PGReportRepository) StatusSummary(ctx context.Context) ([]domain.StatusCountRow, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) AS total FROM reservation GROUP BY status`)
	if err != nil {
		return nil, domain.Storagef(err, "status summary report")
	}
	defer rows.Close()

	result := make([]domain.StatusCountRow, 0)
	for rows.Next() {
		var row domain.StatusCountRow
		if err := rows.Scan(&row.Status, &row.Total); err != nil {
			return nil, domain.Storagef(err, "scan status row")
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

var _ ReportRepository = (*PGReportRepository)(nil)
