package api

import (
	"net/http"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/reports"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service reports.ReportUseCase
}

func NewReportHandler(service reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/occupancy", h.occupancy)
	router.GET("/revenue", h.revenue)
	router.GET("/guest-history", h.guestHistory)
	router.GET("/status-summary", h.statusSummary)
}

func (h *ReportHandler) occupancy(c *gin.Context) {
	rows, err := h.service.Occupancy(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) revenue(c *gin.Context) {
	rows, err := h.service.Revenue(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) guestHistory(c *gin.Context) {
	rows, err := h.service.GuestHistory(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) statusSummary(c *gin.Context) {
	rows, err := h.service.StatusSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
