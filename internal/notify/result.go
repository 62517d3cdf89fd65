package notify

import "time"

type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// ChannelResult — исход одной попытки доставки по одному каналу.
// Используется только для логов; на состояние бронирования и ответ
// вызывающему не влияет.
type ChannelResult struct {
	Channel string
	Outcome Outcome
	Reason  string
	Err     error
	Elapsed time.Duration
}

// SkipError возвращается каналом, когда событие для него неприменимо
// (например, SMS про суточный отчёт). Диспетчер переводит его
// в OutcomeSkipped, а не в OutcomeFailed.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	return "skipped: " + e.Reason
}
