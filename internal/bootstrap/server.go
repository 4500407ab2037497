package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/AtheekAzmi/RoomReservationSystem/api"
	"github.com/AtheekAzmi/RoomReservationSystem/config"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/billing"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/reports"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/reservations"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/rooms"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/session"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the HTTP layer needs. The session manager is
// passed alongside the handlers because the middleware consults it per
// request.
type Handlers struct {
	Auth         *api.AuthHandler
	Reservations *api.ReservationHandler
	Bills        *api.BillHandler
	Rooms        *api.RoomHandler
	Reports      *api.ReportHandler
	Sessions     *session.Manager
}

func NewHandlers(
	auth *session.Authenticator,
	sessions *session.Manager,
	ledger reservations.ReservationLedger,
	engine billing.BillingEngine,
	inventory rooms.RoomInventory,
	reporting reports.ReportUseCase,
) *Handlers {
	return &Handlers{
		Auth:         api.NewAuthHandler(auth, sessions),
		Reservations: api.NewReservationHandler(ledger),
		Bills:        api.NewBillHandler(engine),
		Rooms:        api.NewRoomHandler(inventory),
		Reports:      api.NewReportHandler(reporting),
		Sessions:     sessions,
	}
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, h *Handlers) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(h),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(h *Handlers) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	h.Auth.Register(v1.Group("/auth"))

	protected := v1.Group("/")
	protected.Use(api.RequireSession(h.Sessions))

	h.Reservations.Register(protected.Group("/reservations"))
	h.Bills.Register(protected.Group("/bills"))
	h.Rooms.Register(protected.Group("/rooms"))
	h.Reports.Register(protected.Group("/reports"))

	return router
}
