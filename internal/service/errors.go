package service

import "errors"

var (
	// ErrNotFound — бронирование с таким id не существует.
	ErrNotFound = errors.New("booking not found")
	// ErrInvalidTransition — попытка перевести бронирование, которое уже
	// не в Pending. Повторный клик админа должен получать отказ, а не
	// молчаливый успех, иначе уведомления уйдут второй раз.
	ErrInvalidTransition = errors.New("booking is not pending")
)

// ValidationError — первое незаполненное обязательное поле при создании
// бронирования. Порядок проверки фиксированный:
// name → location → phone → event_date → service → extras.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}
