package api

import (
	"net/http"
	"strconv"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/billing"
	"github.com/gin-gonic/gin"
)

type BillHandler struct {
	service billing.BillingEngine
}

type generateBillRequest struct {
	ReservationNumber string `json:"reservation_number" binding:"required"`
}

type paymentRequest struct {
	Method string  `json:"method" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

type billResponse struct {
	ID                int64   `json:"id"`
	BillNumber        string  `json:"bill_number"`
	ReservationNumber string  `json:"reservation_number"`
	GuestName         string  `json:"guest_name"`
	Subtotal          float64 `json:"subtotal"`
	TaxRate           float64 `json:"tax_rate"`
	TaxAmount         float64 `json:"tax_amount"`
	DiscountAmount    float64 `json:"discount_amount"`
	TotalAmount       float64 `json:"total_amount"`
	PaymentStatus     string  `json:"payment_status"`
}

type paymentResponse struct {
	PaymentID  int64   `json:"payment_id"`
	BillID     int64   `json:"bill_id"`
	AmountPaid float64 `json:"amount_paid"`
	TotalPaid  float64 `json:"total_paid"`
	Status     string  `json:"status"`
}

func NewBillHandler(service billing.BillingEngine) *BillHandler {
	return &BillHandler{service: service}
}

func (h *BillHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.generate)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.adjust)
	router.POST("/:id/payments", h.pay)
}

func (h *BillHandler) generate(c *gin.Context) {
	var req generateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.service.Generate(c.Request.Context(), req.ReservationNumber)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBillResponse(bill))
}

func (h *BillHandler) list(c *gin.Context) {
	bills, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]billResponse, 0, len(bills))
	for i := range bills {
		out = append(out, toBillResponse(&bills[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BillHandler) get(c *gin.Context) {
	id, ok := billID(c)
	if !ok {
		return
	}
	bill, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBillResponse(bill))
}

func (h *BillHandler) adjust(c *gin.Context) {
	id, ok := billID(c)
	if !ok {
		return
	}

	var input billing.AdjustBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.service.Adjust(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBillResponse(bill))
}

func (h *BillHandler) pay(c *gin.Context) {
	id, ok := billID(c)
	if !ok {
		return
	}

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.ProcessPayment(c.Request.Context(), id, req.Method, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, paymentResponse{
		PaymentID:  result.PaymentID,
		BillID:     result.BillID,
		AmountPaid: result.AmountPaid,
		TotalPaid:  result.TotalPaid,
		Status:     string(result.Status),
	})
}

func billID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill id"})
		return 0, false
	}
	return id, true
}

func toBillResponse(bill *domain.Bill) billResponse {
	return billResponse{
		ID:                bill.ID,
		BillNumber:        bill.BillNumber,
		ReservationNumber: bill.ReservationNumber,
		GuestName:         bill.GuestName,
		Subtotal:          bill.Subtotal,
		TaxRate:           bill.TaxRate,
		TaxAmount:         bill.TaxAmount,
		DiscountAmount:    bill.DiscountAmount,
		TotalAmount:       bill.TotalAmount,
		PaymentStatus:     string(bill.PaymentStatus),
	}
}
