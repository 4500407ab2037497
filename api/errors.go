package api

import (
	"net/http"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError translates the core's error taxonomy to HTTP status codes:
// validation 400, not-found 404, conflict 409, everything else 500 with a
// generic body so storage details never leak to the client.
func writeError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
