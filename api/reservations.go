package api

import (
	"net/http"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/reservations"
	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	service reservations.ReservationLedger
}

type reservationResponse struct {
	ReservationNumber string `json:"reservation_number"`
	GuestName         string `json:"guest_name"`
	RoomNumber        string `json:"room_number"`
	StaffName         string `json:"staff_name,omitempty"`
	CheckinDate       string `json:"checkin_date"`
	CheckoutDate      string `json:"checkout_date"`
	Status            string `json:"status"`
}

func NewReservationHandler(service reservations.ReservationLedger) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:number", h.get)
	router.PUT("/:number", h.update)
	router.DELETE("/:number", h.cancel)
}

func (h *ReservationHandler) create(c *gin.Context) {
	var input reservations.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staff := staffFromContext(c)
	if staff != nil {
		input.StaffID = staff.ID
	}

	res, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReservationResponse(res))
}

func (h *ReservationHandler) list(c *gin.Context) {
	var (
		list []domain.Reservation
		err  error
	)
	if status := c.Query("status"); status != "" {
		list, err = h.service.ListByStatus(c.Request.Context(), status)
	} else {
		list, err = h.service.List(c.Request.Context())
	}
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]reservationResponse, 0, len(list))
	for i := range list {
		out = append(out, toReservationResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReservationHandler) get(c *gin.Context) {
	res, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(res))
}

func (h *ReservationHandler) update(c *gin.Context) {
	var patch reservations.UpdateReservationInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Update(c.Request.Context(), c.Param("number"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(res))
}

func (h *ReservationHandler) cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), c.Param("number")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation cancelled"})
}

func toReservationResponse(res *domain.Reservation) reservationResponse {
	return reservationResponse{
		ReservationNumber: res.Number,
		GuestName:         res.GuestName,
		RoomNumber:        res.RoomNumber,
		StaffName:         res.StaffName,
		CheckinDate:       res.CheckinDate.Format(domain.DateLayout),
		CheckoutDate:      res.CheckoutDate.Format(domain.DateLayout),
		Status:            string(res.Status),
	}
}
