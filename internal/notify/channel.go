package notify

import "context"

// Channel оборачивает одного внешнего провайдера уведомлений.
// Enabled вычисляется по конфигу один раз при старте процесса;
// выключенный канал диспетчер не вызывает вовсе.
type Channel interface {
	Name() string
	Enabled() bool
	Send(ctx context.Context, event Event) error
}
