package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jagadha/event-booking/internal/logger"
	"github.com/jagadha/event-booking/internal/model"
	"github.com/jagadha/event-booking/internal/notify"
	"github.com/jagadha/event-booking/internal/repository"
)

// Dispatcher — то, что сервису нужно от рассыльщика уведомлений.
type Dispatcher interface {
	Dispatch(event notify.Event)
	DispatchWait(ctx context.Context, event notify.Event) []notify.ChannelResult
}

type CreateBookingInput struct {
	Name          string   `json:"name" form:"name"`
	Location      string   `json:"location" form:"location"`
	Phone         string   `json:"phone" form:"phone"`
	EventDate     string   `json:"event_date" form:"event_date"`
	Service       string   `json:"service" form:"service"`
	Extras        []string `json:"extras" form:"extras"`
	Notes         string   `json:"notes" form:"notes"`
	CustomerEmail string   `json:"customer_email" form:"customer_email"`
}

// BookingService владеет жизненным циклом бронирования:
// Pending → Confirmed | Rejected, оба конечные. Каждый реальный переход
// порождает ровно одно событие для рассылки; сама рассылка — best-effort
// и на исход операций сервиса не влияет.
type BookingService struct {
	repo       repository.BookingRepository
	dispatcher Dispatcher
	log        *slog.Logger
}

func NewBookingService(repo repository.BookingRepository, dispatcher Dispatcher) *BookingService {
	return &BookingService{
		repo:       repo,
		dispatcher: dispatcher,
		log:        logger.Log,
	}
}

// Create валидирует вход, сохраняет бронирование в Pending и в фоне
// запускает рассылку события Created. Создание не ждёт каналы и не
// падает из-за них.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.Phone = strings.TrimSpace(in.Phone)
	in.EventDate = strings.TrimSpace(in.EventDate)
	in.Service = strings.TrimSpace(in.Service)
	in.Notes = strings.TrimSpace(in.Notes)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)

	// порядок проверок фиксированный, отдаём первое пустое поле
	switch {
	case in.Name == "":
		return nil, &ValidationError{Field: "name"}
	case in.Location == "":
		return nil, &ValidationError{Field: "location"}
	case in.Phone == "":
		return nil, &ValidationError{Field: "phone"}
	case in.EventDate == "":
		return nil, &ValidationError{Field: "event_date"}
	case in.Service == "":
		return nil, &ValidationError{Field: "service"}
	case len(in.Extras) == 0:
		return nil, &ValidationError{Field: "extras"}
	}

	eventDate, err := time.Parse("2006-01-02", in.EventDate)
	if err != nil {
		return nil, &ValidationError{Field: "event_date"}
	}

	booking := &model.Booking{
		Name:          in.Name,
		Location:      in.Location,
		Phone:         in.Phone,
		CustomerEmail: in.CustomerEmail,
		EventDate:     datatypes.Date(eventDate),
		Service:       in.Service,
		// выбор фиксируется одной строкой и дальше не перенормализуется
		Extras: strings.Join(in.Extras, ", "),
		Notes:  in.Notes,
		Status: model.BookingStatusPending,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("booking created", "id", booking.ID, "service", booking.Service)
	s.dispatcher.Dispatch(notify.NewBookingEvent(notify.EventCreated, booking))

	return booking, nil
}

func (s *BookingService) Confirm(ctx context.Context, id uint) (*model.Booking, error) {
	return s.transition(ctx, id, model.BookingStatusConfirmed, notify.EventConfirmed)
}

func (s *BookingService) Reject(ctx context.Context, id uint) (*model.Booking, error) {
	return s.transition(ctx, id, model.BookingStatusRejected, notify.EventRejected)
}

// transition переводит бронирование из Pending в конечный статус.
// Условный UPDATE в репозитории гарантирует, что из двух одновременных
// переходов победит ровно один; проигравший получает ErrInvalidTransition.
// Статус фиксируется в базе строго до запуска рассылки: упасть между
// этими шагами — значит потерять уведомление, но не состояние.
func (s *BookingService) transition(
	ctx context.Context,
	id uint,
	status model.BookingStatus,
	kind notify.EventKind,
) (*model.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking %d: %w", id, err)
	}

	rows, err := s.repo.UpdateStatusIfPending(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update booking %d status: %w", id, err)
	}
	if rows == 0 {
		return nil, ErrInvalidTransition
	}

	booking.Status = status
	s.log.Info("booking status changed", "id", id, "status", status)

	// Рассылка ждёт все каналы, но уже вне пути вызвавшей операции.
	go s.dispatcher.DispatchWait(context.Background(), notify.NewBookingEvent(kind, booking))

	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (*model.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking %d: %w", id, err)
	}
	return booking, nil
}

func (s *BookingService) List(ctx context.Context) ([]model.Booking, error) {
	return s.repo.List(ctx)
}

// Delete — деструктивная админская операция, уведомлений не порождает.
func (s *BookingService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete booking %d: %w", id, err)
	}
	s.log.Info("booking deleted", "id", id)
	return nil
}
