package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jagadha/event-booking/internal/logger"
	"github.com/jagadha/event-booking/internal/service"
)

// DailyReporter — фоновый компонент процесса: раз в сутки, в настроенные
// час:минуту серверного времени, собирает сводку за текущий день и
// прогоняет её через общий диспетчер. Запускается один раз при старте
// процесса, останавливается при шатдауне. Пропущенное из-за даунтайма
// срабатывание не навёрстывается.
type DailyReporter struct {
	reports    *service.ReportService
	dispatcher service.Dispatcher
	hour       int
	minute     int

	log *slog.Logger
	now func() time.Time

	stopCh    chan struct{}
	doneCh    chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

func NewDailyReporter(reports *service.ReportService, dispatcher service.Dispatcher, hour, minute int) *DailyReporter {
	return &DailyReporter{
		reports:    reports,
		dispatcher: dispatcher,
		hour:       hour,
		minute:     minute,
		log:        logger.Log,
		now:        time.Now,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

func (r *DailyReporter) Start() {
	r.startOnce.Do(func() {
		r.log.Info("daily reporter armed", "hour", r.hour, "minute", r.minute)
		go r.run()
	})
}

// Stop гасит цикл и дожидается выхода горутины. Идемпотентен.
func (r *DailyReporter) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
	<-r.doneCh
}

func (r *DailyReporter) run() {
	defer close(r.doneCh)

	for {
		next := r.nextTrigger(r.now())
		timer := time.NewTimer(next.Sub(r.now()))

		select {
		case <-r.stopCh:
			timer.Stop()
			return
		case <-timer.C:
			r.fire()
		}
	}
}

// nextTrigger — ближайшее будущее срабатывание hh:mm: сегодня, если время
// ещё не прошло, иначе завтра.
func (r *DailyReporter) nextTrigger(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), r.hour, r.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// fire — одно срабатывание. Любая ошибка агрегации или рассылки гасится
// здесь: цикл обязан остаться взведённым на следующий день.
func (r *DailyReporter) fire() {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("daily report panicked", "panic", p)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	event, err := r.reports.BuildDailyReport(ctx, r.now())
	if err != nil {
		r.log.Error("daily report aggregation failed", "err", err)
		return
	}

	r.log.Info("daily report dispatched", "event", event.ID, "total", event.Report.Total)
	r.dispatcher.DispatchWait(ctx, event)
}
