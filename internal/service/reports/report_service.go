package reports

import (
	"context"
	"time"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/repository"
)

type ReportUseCase interface {
	Occupancy(ctx context.Context, from, to string) ([]domain.OccupancyRow, error)
	Revenue(ctx context.Context, from, to string) ([]domain.RevenueRow, error)
	GuestHistory(ctx context.Context, from, to string) ([]domain.GuestHistoryRow, error)
	StatusSummary(ctx context.Context) ([]domain.StatusCountRow, error)
}

type ReportService struct {
	reports repository.ReportRepository
}

func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) Occupancy(ctx context.Context, from, to string) ([]domain.OccupancyRow, error) {
	f, t, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.reports.Occupancy(ctx, f, t)
}

func (s *ReportService) Revenue(ctx context.Context, from, to string) ([]domain.RevenueRow, error) {
	f, t, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.reports.Revenue(ctx, f, t)
}

func (s *ReportService) GuestHistory(ctx context.Context, from, to string) ([]domain.GuestHistoryRow, error) {
	f, t, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.reports.GuestHistory(ctx, f, t)
}

func (s *ReportService) StatusSummary(ctx context.Context) ([]domain.StatusCountRow, error) {
	return s.reports.StatusSummary(ctx)
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	f, err := domain.ParseDate(from, "from date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := domain.ParseDate(to, "to date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if t.Before(f) {
		return time.Time{}, time.Time{}, domain.Validationf("end date must be after start date")
	}
	return f, t, nil
}

var _ ReportUseCase = (*ReportService)(nil)
