package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jagadha/event-booking/internal/model"
)

type EventKind string

const (
	EventCreated     EventKind = "created"
	EventConfirmed   EventKind = "confirmed"
	EventRejected    EventKind = "rejected"
	EventDailyReport EventKind = "daily_report"
)

// ReportData — агрегат суточного отчёта: количество бронирований
// по статусам за календарный день и общий итог.
type ReportData struct {
	Date   time.Time
	Counts map[model.BookingStatus]int64
	Total  int64
}

// Text строит текст отчёта в том виде, в каком он уходит админу.
// Порядок статусов фиксированный, чтобы текст был воспроизводимым.
func (r ReportData) Text() string {
	s := fmt.Sprintf("Daily Bookings Report (%s)\nTotal: %d\n", r.Date.Format("2006-01-02"), r.Total)
	for _, st := range []model.BookingStatus{
		model.BookingStatusPending,
		model.BookingStatusConfirmed,
		model.BookingStatusRejected,
	} {
		if cnt, ok := r.Counts[st]; ok {
			s += fmt.Sprintf("%s: %d\n", st, cnt)
		}
	}
	return s
}

// Event — одно событие жизненного цикла бронирования (или суточный отчёт),
// уходящее веером по каналам. Живёт только на время рассылки, нигде
// не сохраняется и не ретраится.
type Event struct {
	ID   string
	Kind EventKind

	// Снимок бронирования на момент рассылки; nil для суточного отчёта.
	Booking *model.Booking
	// Данные отчёта; nil для событий по бронированию.
	Report *ReportData
}

// NewBookingEvent снимает копию бронирования: дальнейшие изменения
// оригинала рассылку не затрагивают.
func NewBookingEvent(kind EventKind, b *model.Booking) Event {
	snapshot := *b
	return Event{
		ID:      uuid.NewString(),
		Kind:    kind,
		Booking: &snapshot,
	}
}

func NewReportEvent(r ReportData) Event {
	return Event{
		ID:     uuid.NewString(),
		Kind:   EventDailyReport,
		Report: &r,
	}
}
