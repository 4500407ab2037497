package domain

import "time"

// Aggregation rows for the reporting queries. These are read models only;
// nothing in the core mutates through them.

type OccupancyRow struct {
	RoomType      string `json:"room_type"`
	TotalBookings int    `json:"total_bookings"`
	TotalNights   int    `json:"total_nights"`
	RoomsUsed     int    `json:"rooms_used"`
}

type RevenueRow struct {
	Date       time.Time `json:"date"`
	TotalBills int       `json:"total_bills"`
	Subtotal   float64   `json:"subtotal"`
	TaxTotal   float64   `json:"tax_total"`
	GrandTotal float64   `json:"grand_total"`
}

type GuestHistoryRow struct {
	GuestID       int64   `json:"guest_id"`
	GuestName     string  `json:"guest_name"`
	ContactNumber string  `json:"contact_number"`
	TotalStays    int     `json:"total_stays"`
	TotalNights   int     `json:"total_nights"`
	TotalSpent    float64 `json:"total_spent"`
}

type StatusCountRow struct {
	Status ReservationStatus `json:"status"`
	Total  int               `json:"total"`
}
