package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/session"
	"github.com/gin-gonic/gin"
)

const staffContextKey = "staff"

type AuthHandler struct {
	auth     *session.Authenticator
	sessions *session.Manager
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	StaffID  int64  `json:"staff_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func NewAuthHandler(auth *session.Authenticator, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staff, err := h.auth.Verify(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		writeError(c, err)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), *staff)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:    token,
		StaffID:  staff.ID,
		FullName: staff.FullName,
		Role:     staff.Role,
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session token"})
		return
	}
	if err := h.sessions.Delete(c.Request.Context(), token); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// RequireSession resolves the bearer token and injects the staff identity
// into the request context; requests without a live session are rejected.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}
		staff, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}
		c.Set(staffContextKey, staff)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func staffFromContext(c *gin.Context) *domain.Staff {
	v, ok := c.Get(staffContextKey)
	if !ok {
		return nil
	}
	staff, _ := v.(*domain.Staff)
	return staff
}
