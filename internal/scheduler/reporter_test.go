package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagadha/event-booking/internal/model"
	"github.com/jagadha/event-booking/internal/notify"
	"github.com/jagadha/event-booking/internal/service"
)

type stubRepo struct {
	counts map[model.BookingStatus]int64
	err    error
}

func (r *stubRepo) Create(context.Context, *model.Booking) error { return nil }
func (r *stubRepo) GetByID(context.Context, uint) (*model.Booking, error) {
	return nil, errors.New("not implemented")
}
func (r *stubRepo) UpdateStatusIfPending(context.Context, uint, model.BookingStatus) (int64, error) {
	return 0, nil
}
func (r *stubRepo) List(context.Context) ([]model.Booking, error) { return nil, nil }
func (r *stubRepo) Delete(context.Context, uint) error            { return nil }

func (r *stubRepo) CountByStatusForDate(context.Context, time.Time) (map[model.BookingStatus]int64, error) {
	return r.counts, r.err
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (d *recordingDispatcher) Dispatch(event notify.Event) {
	d.DispatchWait(context.Background(), event)
}

func (d *recordingDispatcher) DispatchWait(_ context.Context, event notify.Event) []notify.ChannelResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) all() []notify.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]notify.Event(nil), d.events...)
}

func TestNextTrigger(t *testing.T) {
	r := NewDailyReporter(nil, nil, 8, 0)

	// до 08:00 — срабатывание сегодня
	now := time.Date(2026, 8, 31, 6, 30, 0, 0, time.Local)
	next := r.nextTrigger(now)
	assert.Equal(t, time.Date(2026, 8, 31, 8, 0, 0, 0, time.Local), next)

	// после 08:00 — завтра
	now = time.Date(2026, 8, 31, 8, 0, 1, 0, time.Local)
	next = r.nextTrigger(now)
	assert.Equal(t, time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local), next)

	// ровно 08:00 считается прошедшим, иначе цикл сработал бы дважды
	now = time.Date(2026, 8, 31, 8, 0, 0, 0, time.Local)
	next = r.nextTrigger(now)
	assert.Equal(t, time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local), next)
}

func TestFire_BuildsAndDispatchesReport(t *testing.T) {
	repo := &stubRepo{counts: map[model.BookingStatus]int64{
		model.BookingStatusPending:   3,
		model.BookingStatusConfirmed: 2,
		model.BookingStatusRejected:  1,
	}}
	dispatcher := &recordingDispatcher{}

	r := NewDailyReporter(service.NewReportService(repo), dispatcher, 8, 0)
	r.fire()

	events := dispatcher.all()
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, notify.EventDailyReport, event.Kind)
	require.NotNil(t, event.Report)
	assert.Equal(t, int64(6), event.Report.Total)
	assert.Equal(t, int64(3), event.Report.Counts[model.BookingStatusPending])
}

func TestFire_AggregationErrorIsSwallowed(t *testing.T) {
	repo := &stubRepo{err: errors.New("db on fire")}
	dispatcher := &recordingDispatcher{}

	r := NewDailyReporter(service.NewReportService(repo), dispatcher, 8, 0)

	require.NotPanics(t, r.fire)
	assert.Empty(t, dispatcher.all(), "failed aggregation must not dispatch")
}

func TestStartStop_Lifecycle(t *testing.T) {
	repo := &stubRepo{counts: map[model.BookingStatus]int64{}}
	dispatcher := &recordingDispatcher{}

	r := NewDailyReporter(service.NewReportService(repo), dispatcher, 8, 0)
	r.Start()
	r.Start() // повторный Start — no-op

	done := make(chan struct{})
	go func() {
		r.Stop()
		r.Stop() // и повторный Stop тоже
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not release the reporter goroutine")
	}
}

func TestRun_FiresAtTrigger(t *testing.T) {
	repo := &stubRepo{counts: map[model.BookingStatus]int64{
		model.BookingStatusPending: 1,
	}}
	dispatcher := &recordingDispatcher{}

	r := NewDailyReporter(service.NewReportService(repo), dispatcher, 0, 0)

	// подмена часов: триггер через 30мс после "сейчас"
	base := time.Now()
	trigger := base.Add(30 * time.Millisecond)
	r.hour = trigger.Hour()
	r.minute = trigger.Minute()
	// секунды в триггере всегда нулевые, поэтому сдвигаем "сейчас" так,
	// чтобы до ближайшего hh:mm оставались миллисекунды
	r.now = func() time.Time {
		return time.Date(base.Year(), base.Month(), base.Day(), trigger.Hour(), trigger.Minute(), 0, 0, base.Location()).
			Add(-30 * time.Millisecond).
			Add(time.Since(base))
	}

	r.Start()
	defer r.Stop()

	require.Eventually(t, func() bool {
		return len(dispatcher.all()) >= 1
	}, 2*time.Second, 10*time.Millisecond, "reporter never fired at the trigger time")
}
