package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jagadha/event-booking/internal/notify"
	"github.com/jagadha/event-booking/internal/repository"
)

// ReportService собирает суточную сводку по бронированиям, созданным
// за указанный календарный день.
type ReportService struct {
	repo repository.BookingRepository
}

func NewReportService(repo repository.BookingRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) BuildDailyReport(ctx context.Context, day time.Time) (notify.Event, error) {
	counts, err := s.repo.CountByStatusForDate(ctx, day)
	if err != nil {
		return notify.Event{}, fmt.Errorf("count bookings for %s: %w", day.Format("2006-01-02"), err)
	}

	var total int64
	for _, cnt := range counts {
		total += cnt
	}

	return notify.NewReportEvent(notify.ReportData{
		Date:   day,
		Counts: counts,
		Total:  total,
	}), nil
}
