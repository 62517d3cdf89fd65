package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jagadha/event-booking/internal/logger"
)

// DefaultChannelTimeout — предел на одну попытку доставки по одному
// каналу. Единый для всех каналов; по истечении попытка бросается
// без ретраев.
const DefaultChannelTimeout = 12 * time.Second

// Dispatcher веером раскидывает событие по всем включённым каналам,
// каждый — в своей горутине. Отказ одного канала не задерживает и не
// отменяет остальные и никогда не доходит до вызывающего кода:
// доставка принципиально best-effort, не-более-одного-раза.
type Dispatcher struct {
	channels []Channel
	timeout  time.Duration
	log      *slog.Logger
}

func NewDispatcher(channels []Channel, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		channels: channels,
		timeout:  DefaultChannelTimeout,
		log:      logger.Log,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type Option func(*Dispatcher)

func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = timeout }
}

func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// Dispatch — огонь-и-забыл: запускает рассылку в фоне и сразу
// возвращается. Используется на пути обработки запроса (событие
// Created), где ждать каналы нельзя. Контекст запроса намеренно
// не наследуется: завершение запроса не должно обрывать доставку.
func (d *Dispatcher) Dispatch(event Event) {
	go d.DispatchWait(context.Background(), event)
}

// DispatchWait выполняет ту же рассылку, но дожидается завершения всех
// попыток и возвращает их исходы. Используется на админском и
// плановом путях, где вызов и так уже вне критического пути записи.
func (d *Dispatcher) DispatchWait(ctx context.Context, event Event) []ChannelResult {
	results := make([]ChannelResult, len(d.channels))

	var wg sync.WaitGroup
	for i, ch := range d.channels {
		if !ch.Enabled() {
			results[i] = ChannelResult{
				Channel: ch.Name(),
				Outcome: OutcomeSkipped,
				Reason:  "missing config",
			}
			continue
		}

		wg.Add(1)
		go func(i int, ch Channel) {
			defer wg.Done()
			results[i] = d.attempt(ctx, ch, event)
		}(i, ch)
	}
	wg.Wait()

	for _, res := range results {
		d.logResult(event, res)
	}
	return results
}

// attempt — одна попытка доставки с собственным таймаутом. По истечении
// таймаута попытка бросается, даже если канал проигнорировал контекст.
// Паника внутри канала гасится и превращается в Failed.
func (d *Dispatcher) attempt(ctx context.Context, ch Channel, event Event) ChannelResult {
	start := time.Now()
	res := ChannelResult{Channel: ch.Name()}

	cctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- fmt.Errorf("channel panic: %v", p)
			}
		}()
		done <- ch.Send(cctx, event)
	}()

	var err error
	select {
	case err = <-done:
	case <-cctx.Done():
		err = cctx.Err()
	}
	res.Elapsed = time.Since(start)

	switch {
	case err == nil:
		res.Outcome = OutcomeSent
	case isSkip(err):
		res.Outcome = OutcomeSkipped
		res.Reason = skipReason(err)
	case errors.Is(err, context.DeadlineExceeded):
		res.Outcome = OutcomeFailed
		res.Reason = "timeout"
		res.Err = err
	default:
		res.Outcome = OutcomeFailed
		res.Err = err
	}
	return res
}

func (d *Dispatcher) logResult(event Event, res ChannelResult) {
	attrs := []any{
		"event", event.ID,
		"kind", event.Kind,
		"channel", res.Channel,
		"elapsed", res.Elapsed,
	}
	switch res.Outcome {
	case OutcomeSent:
		d.log.Info("notification sent", attrs...)
	case OutcomeSkipped:
		d.log.Info("notification skipped", append(attrs, "reason", res.Reason)...)
	case OutcomeFailed:
		d.log.Error("notification failed", append(attrs, "reason", res.Reason, "err", res.Err)...)
	}
}

func isSkip(err error) bool {
	var se *SkipError
	return errors.As(err, &se)
}

func skipReason(err error) string {
	var se *SkipError
	if errors.As(err, &se) {
		return se.Reason
	}
	return ""
}
