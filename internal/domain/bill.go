package domain

import (
	"math"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodOnline:
		return true
	}
	return false
}

// Bill is derived 1:1 from a reservation. TaxRate is a percentage
// (10 means 10%); all amounts are rounded to two decimals.
type Bill struct {
	ID                int64
	BillNumber        string
	ReservationID     int64
	ReservationNumber string
	GuestName         string
	Subtotal          float64
	TaxRate           float64
	TaxAmount         float64
	DiscountAmount    float64
	TotalAmount       float64
	PaymentStatus     PaymentStatus
	GeneratedAt       time.Time
}

// Payment is an append-only record; DiscountAmount snapshots the bill's
// discount at payment time.
type Payment struct {
	ID             int64
	BillID         int64
	AmountPaid     float64
	DiscountAmount float64
	Method         PaymentMethod
	PaidAt         time.Time
}

type PaymentResult struct {
	PaymentID  int64
	BillID     int64
	AmountPaid float64
	TotalPaid  float64
	Status     PaymentStatus
}

// Round2 rounds half-up to two decimal places. Every monetary value in the
// system goes through this, so repeated adjustments cannot drift by cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApplyAdjustment recomputes tax and total from the stored subtotal.
// Client-supplied subtotals are never trusted; discount and additional tax
// are clamped to zero or more.
func (b *Bill) ApplyAdjustment(discount, taxRatePercent, additionalTax float64) {
	if discount < 0 {
		discount = 0
	}
	if additionalTax < 0 {
		additionalTax = 0
	}
	afterDiscount := b.Subtotal - discount
	if afterDiscount < 0 {
		afterDiscount = 0
	}
	b.DiscountAmount = Round2(discount)
	b.TaxRate = taxRatePercent
	b.TaxAmount = Round2(afterDiscount * taxRatePercent / 100)
	b.TotalAmount = Round2(afterDiscount + b.TaxAmount + Round2(additionalTax))
}
