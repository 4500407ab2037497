package billing

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/notifier"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/repository"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/rooms"
)

type BillingEngine interface {
	Generate(ctx context.Context, reservationNumber string) (*domain.Bill, error)
	Adjust(ctx context.Context, billID int64, input AdjustBillInput) (*domain.Bill, error)
	ProcessPayment(ctx context.Context, billID int64, method string, amount float64) (*domain.PaymentResult, error)
	Get(ctx context.Context, billID int64) (*domain.Bill, error)
	List(ctx context.Context) ([]domain.Bill, error)
}

type Notifier interface {
	Publish(ctx context.Context, eventType notifier.EventType, res domain.Reservation)
}

// AdjustBillInput recomputes a bill. TaxRatePercent nil keeps the engine's
// configured default rate.
type AdjustBillInput struct {
	DiscountAmount float64  `json:"discount_amount"`
	TaxRatePercent *float64 `json:"tax_rate"`
	AdditionalTax  float64  `json:"additional_tax"`
}

// BillingService derives bills from reservations and tracks payment state
// until fully paid. It reads the ledger but never writes reservation state
// except the checkout flip on first bill generation.
type BillingService struct {
	bills          repository.BillRepository
	reservations   repository.ReservationRepository
	inventory      rooms.RoomInventory
	events         Notifier
	taxRatePercent float64
}

func NewBillingService(
	bills repository.BillRepository,
	reservations repository.ReservationRepository,
	inventory rooms.RoomInventory,
	events Notifier,
	taxRatePercent float64,
) *BillingService {
	return &BillingService{
		bills:          bills,
		reservations:   reservations,
		inventory:      inventory,
		events:         events,
		taxRatePercent: taxRatePercent,
	}
}

// Generate computes the bill from the stay length and the room's current
// rate. Generating twice for the same reservation returns the existing
// bill unchanged; only the first call flips the reservation to
// CHECKED_OUT.
func (s *BillingService) Generate(ctx context.Context, reservationNumber string) (*domain.Bill, error) {
	res, err := s.reservations.GetByNumber(ctx, reservationNumber)
	if err != nil {
		return nil, err
	}
	if res.Status == domain.ReservationStatusCancelled {
		return nil, domain.Conflictf("cannot bill a cancelled reservation")
	}

	nights := res.Nights()
	if nights <= 0 {
		return nil, domain.Validationf("invalid stay duration")
	}

	rate, err := s.inventory.CurrentRate(ctx, res.RoomID)
	if err != nil {
		return nil, err
	}

	subtotal := domain.Round2(float64(nights) * rate.RatePerNight)
	taxAmount := domain.Round2(subtotal * s.taxRatePercent / 100)
	total := domain.Round2(subtotal + taxAmount)

	bill := &domain.Bill{
		BillNumber:        "BILL-" + strconv.FormatInt(time.Now().UnixMilli(), 10),
		ReservationID:     res.ID,
		ReservationNumber: res.Number,
		GuestName:         res.GuestName,
		Subtotal:          subtotal,
		TaxRate:           s.taxRatePercent,
		TaxAmount:         taxAmount,
		DiscountAmount:    0,
		TotalAmount:       total,
		PaymentStatus:     domain.PaymentStatusPending,
	}

	created, err := s.bills.Generate(ctx, bill)
	if err != nil {
		return nil, err
	}
	if created {
		res.Status = domain.ReservationStatusCheckedOut
		s.events.Publish(ctx, notifier.EventUpdated, *res)
	}
	return bill, nil
}

func (s *BillingService) Adjust(ctx context.Context, billID int64, input AdjustBillInput) (*domain.Bill, error) {
	taxRate := s.taxRatePercent
	if input.TaxRatePercent != nil {
		taxRate = *input.TaxRatePercent
	}
	if taxRate < 0 {
		return nil, domain.Validationf("tax rate cannot be negative")
	}
	return s.bills.Adjust(ctx, billID, input.DiscountAmount, taxRate, input.AdditionalTax)
}

func (s *BillingService) ProcessPayment(ctx context.Context, billID int64, method string, amount float64) (*domain.PaymentResult, error) {
	m := domain.PaymentMethod(method)
	if !domain.ValidPaymentMethod(m) {
		return nil, domain.Validationf("invalid payment method (CASH, CARD, ONLINE)")
	}
	if amount <= 0 {
		return nil, domain.Validationf("payment amount must be greater than 0")
	}

	result, roomID, err := s.bills.ApplyPayment(ctx, billID, m, domain.Round2(amount))
	if err != nil {
		return nil, err
	}

	// Once settled the guest is gone; hand the room back to inventory.
	// The payment is already committed, so a release failure is logged
	// rather than surfaced as a payment error.
	if result.Status == domain.PaymentStatusPaid {
		if err := s.inventory.SetStatus(ctx, roomID, domain.RoomStatusAvailable); err != nil {
			log.Printf("billing: release room %d after full payment of bill %d: %v", roomID, billID, err)
		}
	}
	return result, nil
}

func (s *BillingService) Get(ctx context.Context, billID int64) (*domain.Bill, error) {
	return s.bills.GetByID(ctx, billID)
}

func (s *BillingService) List(ctx context.Context) ([]domain.Bill, error) {
	return s.bills.List(ctx)
}

var _ BillingEngine = (*BillingService)(nil)
