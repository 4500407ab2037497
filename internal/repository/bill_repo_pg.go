package repository

import (
	"context"
	"errors"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BillRepository interface {
	// Generate inserts the bill unless one already exists for its
	// reservation; the existing row wins and is loaded back into bill.
	// Returns true when this call created the row.
	Generate(ctx context.Context, bill *domain.Bill) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Bill, error)
	List(ctx context.Context) ([]domain.Bill, error)
	Adjust(ctx context.Context, billID int64, discount, taxRatePercent, additionalTax float64) (*domain.Bill, error)
	// ApplyPayment appends a payment and settles the bill status under a
	// row lock. Also returns the room id of the bill's reservation so the
	// caller can release the room once the bill is fully paid.
	ApplyPayment(ctx context.Context, billID int64, method domain.PaymentMethod, amount float64) (*domain.PaymentResult, int64, error)
}

type PGBillRepository struct {
	db *pgxpool.Pool
}

func NewBillRepository(db *pgxpool.Pool) BillRepository {
	return &PGBillRepository{db: db}
}

func (r *PGBillRepository) Generate(ctx context.Context, bill *domain.Bill) (bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, domain.Storagef(err, "begin generate bill")
	}
	defer tx.Rollback(ctx)

	// The unique index on reservation_id makes concurrent generates
	// collapse to a single row; the second caller reads the winner's bill.
	err = tx.QueryRow(ctx, `INSERT INTO bill (bill_number, reservation_id, subtotal, tax_rate, tax_amount, discount_amount, total_amount, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (reservation_id) DO NOTHING
		RETURNING bill_id, generated_at`,
		bill.BillNumber, bill.ReservationID, bill.Subtotal, bill.TaxRate, bill.TaxAmount,
		bill.DiscountAmount, bill.TotalAmount, bill.PaymentStatus).
		Scan(&bill.ID, &bill.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		existing, err := r.getByReservationTx(ctx, tx, bill.ReservationID)
		if err != nil {
			return false, err
		}
		*bill = *existing
		return false, tx.Commit(ctx)
	}
	if err != nil {
		return false, domain.Storagef(err, "insert bill")
	}

	if _, err := tx.Exec(ctx, `UPDATE reservation SET status=$1, updated_at=now() WHERE reservation_id=$2`,
		domain.ReservationStatusCheckedOut, bill.ReservationID); err != nil {
		return false, domain.Storagef(err, "mark reservation checked out")
	}

	if err := tx.Commit(ctx); err != nil {
		return false, domain.Storagef(err, "commit generate bill")
	}
	return true, nil
}

const billColumns = `b.bill_id, b.bill_number, b.reservation_id, b.subtotal, b.tax_rate, b.tax_amount,
	b.discount_amount, b.total_amount, b.payment_status, b.generated_at,
	res.reservation_number, g.guest_name`

const billJoins = ` FROM bill b
	JOIN reservation res ON b.reservation_id = res.reservation_id
	JOIN guest g ON res.guest_id = g.guest_id`

func (r *PGBillRepository) GetByID(ctx context.Context, id int64) (*domain.Bill, error) {
	row := r.db.QueryRow(ctx, `SELECT `+billColumns+billJoins+` WHERE b.bill_id=$1`, id)
	bill, err := scanBill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("bill not found: %d", id)
		}
		return nil, domain.Storagef(err, "load bill")
	}
	return bill, nil
}

func (r *PGBillRepository) List(ctx context.Context) ([]domain.Bill, error) {
	rows, err := r.db.Query(ctx, `SELECT `+billColumns+billJoins+` ORDER BY b.generated_at DESC`)
	if err != nil {
		return nil, domain.Storagef(err, "list bills")
	}
	defer rows.Close()

	bills := make([]domain.Bill, 0)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, domain.Storagef(err, "scan bill")
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storagef(err, "iterate bills")
	}
	return bills, nil
}

func (r *PGBillRepository) Adjust(ctx context.Context, billID int64, discount, taxRatePercent, additionalTax float64) (*domain.Bill, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, domain.Storagef(err, "begin adjust bill")
	}
	defer tx.Rollback(ctx)

	bill, err := r.lockBill(ctx, tx, billID)
	if err != nil {
		return nil, err
	}
	if bill.PaymentStatus == domain.PaymentStatusPaid {
		return nil, domain.Conflictf("cannot adjust a fully paid bill")
	}

	bill.ApplyAdjustment(discount, taxRatePercent, additionalTax)

	if _, err := tx.Exec(ctx, `UPDATE bill SET discount_amount=$1, tax_rate=$2, tax_amount=$3, total_amount=$4 WHERE bill_id=$5`,
		bill.DiscountAmount, bill.TaxRate, bill.TaxAmount, bill.TotalAmount, billID); err != nil {
		return nil, domain.Storagef(err, "update bill adjustments")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.Storagef(err, "commit adjust bill")
	}
	return bill, nil
}

func (r *PGBillRepository) ApplyPayment(ctx context.Context, billID int64, method domain.PaymentMethod, amount float64) (*domain.PaymentResult, int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, domain.Storagef(err, "begin payment")
	}
	defer tx.Rollback(ctx)

	bill, err := r.lockBill(ctx, tx, billID)
	if err != nil {
		return nil, 0, err
	}
	if bill.PaymentStatus == domain.PaymentStatusPaid {
		return nil, 0, domain.Conflictf("bill is already fully paid")
	}

	var paid float64
	if err := tx.QueryRow(ctx, `SELECT COALESCE(SUM(amount_paid), 0) FROM payment WHERE bill_id=$1`, billID).Scan(&paid); err != nil {
		return nil, 0, domain.Storagef(err, "sum payments")
	}

	remaining := domain.Round2(bill.TotalAmount - paid)
	if amount > remaining+0.004 {
		return nil, 0, domain.Conflictf("payment exceeds bill total")
	}

	var paymentID int64
	err = tx.QueryRow(ctx, `INSERT INTO payment (bill_id, amount_paid, discount_amount, payment_method)
		VALUES ($1, $2, $3, $4) RETURNING payment_id`,
		billID, amount, bill.DiscountAmount, method).Scan(&paymentID)
	if err != nil {
		return nil, 0, domain.Storagef(err, "insert payment")
	}

	totalPaid := domain.Round2(paid + amount)
	status := domain.PaymentStatusPartial
	if totalPaid >= bill.TotalAmount-0.004 {
		status = domain.PaymentStatusPaid
	}

	if _, err := tx.Exec(ctx, `UPDATE bill SET payment_status=$1 WHERE bill_id=$2`, status, billID); err != nil {
		return nil, 0, domain.Storagef(err, "update payment status")
	}

	var roomID int64
	if err := tx.QueryRow(ctx, `SELECT room_id FROM reservation WHERE reservation_id=$1`, bill.ReservationID).Scan(&roomID); err != nil {
		return nil, 0, domain.Storagef(err, "load reservation room")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, domain.Storagef(err, "commit payment")
	}

	return &domain.PaymentResult{
		PaymentID:  paymentID,
		BillID:     billID,
		AmountPaid: amount,
		TotalPaid:  totalPaid,
		Status:     status,
	}, roomID, nil
}

func (r *PGBillRepository) lockBill(ctx context.Context, tx pgx.Tx, billID int64) (*domain.Bill, error) {
	row := tx.QueryRow(ctx, `SELECT bill_id, bill_number, reservation_id, subtotal, tax_rate, tax_amount,
		discount_amount, total_amount, payment_status, generated_at
		FROM bill WHERE bill_id=$1 FOR UPDATE`, billID)
	var b domain.Bill
	err := row.Scan(&b.ID, &b.BillNumber, &b.ReservationID, &b.Subtotal, &b.TaxRate, &b.TaxAmount,
		&b.DiscountAmount, &b.TotalAmount, &b.PaymentStatus, &b.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("bill not found: %d", billID)
		}
		return nil, domain.Storagef(err, "lock bill")
	}
	return &b, nil
}

func (r *PGBillRepository) getByReservationTx(ctx context.Context, tx pgx.Tx, reservationID int64) (*domain.Bill, error) {
	row := tx.QueryRow(ctx, `SELECT `+billColumns+billJoins+` WHERE b.reservation_id=$1`, reservationID)
	bill, err := scanBill(row)
	if err != nil {
		return nil, domain.Storagef(err, "load existing bill")
	}
	return bill, nil
}

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var b domain.Bill
	err := row.Scan(&b.ID, &b.BillNumber, &b.ReservationID, &b.Subtotal, &b.TaxRate, &b.TaxAmount,
		&b.DiscountAmount, &b.TotalAmount, &b.PaymentStatus, &b.GeneratedAt,
		&b.ReservationNumber, &b.GuestName)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

var _ BillRepository = (*PGBillRepository)(nil)
