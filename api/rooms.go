package api

import (
	"net/http"
	"strconv"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/rooms"
	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	service rooms.RoomInventory
}

type roomResponse struct {
	ID          int64  `json:"id"`
	RoomNumber  string `json:"room_number"`
	FloorNumber int    `json:"floor_number"`
	TypeName    string `json:"type_name"`
	Status      string `json:"status"`
}

type roomStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func NewRoomHandler(service rooms.RoomInventory) *RoomHandler {
	return &RoomHandler{service: service}
}

func (h *RoomHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/available", h.available)
	router.PUT("/:id/status", h.setStatus)
}

func (h *RoomHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponses(list))
}

func (h *RoomHandler) available(c *gin.Context) {
	list, err := h.service.FindAvailable(
		c.Request.Context(),
		c.Query("type"),
		c.Query("checkin"),
		c.Query("checkout"),
	)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponses(list))
}

func (h *RoomHandler) setStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req roomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), id, domain.RoomStatus(req.Status)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "room status updated"})
}

func toRoomResponses(list []domain.Room) []roomResponse {
	out := make([]roomResponse, 0, len(list))
	for _, r := range list {
		out = append(out, roomResponse{
			ID:          r.ID,
			RoomNumber:  r.RoomNumber,
			FloorNumber: r.FloorNumber,
			TypeName:    r.TypeName,
			Status:      string(r.Status),
		})
	}
	return out
}
