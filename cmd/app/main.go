package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AtheekAzmi/RoomReservationSystem/config"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/bootstrap"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/cache"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/kafka"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/notifier"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/repository"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/billing"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/guests"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/reports"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/reservations"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/service/rooms"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Hotel.RoomsCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	roomRepo := repository.NewRoomRepository(pool)
	guestRepo := repository.NewGuestRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	billRepo := repository.NewBillRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	events := notifier.New()
	events.Subscribe(notifier.NewAuditLogListener(cfg.Hotel.AuditLogPath))
	events.Subscribe(notifier.NewRoomSyncListener())
	events.Subscribe(notifier.NewKafkaListener(producer, cfg.Kafka.ReservationsTopic, cfg.Kafka.NotificationsTopic))

	roomService := rooms.NewRoomService(roomRepo, redisCache, cfg.Hotel.RoomTypes)
	guestService := guests.NewGuestService(guestRepo)
	reservationService := reservations.NewReservationService(
		reservationRepo,
		roomService,
		guestService,
		redisCache,
		events,
		time.Duration(cfg.Hotel.RoomHoldTTLSeconds)*time.Second,
		cfg.Hotel.MaxStayNights,
	)
	billingService := billing.NewBillingService(billRepo, reservationRepo, roomService, events, cfg.Hotel.TaxRatePercent)
	reportService := reports.NewReportService(reportRepo)

	sessions := session.NewManager(cfg.Redis, time.Duration(cfg.Session.TTLMinutes)*time.Minute)
	auth := session.NewAuthenticator(staffRepo)

	handlers := bootstrap.NewHandlers(auth, sessions, reservationService, billingService, roomService, reportService)

	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
