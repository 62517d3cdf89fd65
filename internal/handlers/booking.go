package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jagadha/event-booking/internal/model"
	"github.com/jagadha/event-booking/internal/notify"
	"github.com/jagadha/event-booking/internal/receipt"
	"github.com/jagadha/event-booking/internal/service"
)

// bookingView — представление бронирования наружу; wa.me-ссылка
// собирается здесь же, чтобы клиентская сторона могла показать
// кнопку «написать в WhatsApp» независимо от состояния канала.
type bookingView struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	Phone         string `json:"phone"`
	CustomerEmail string `json:"customer_email,omitempty"`
	EventDate     string `json:"event_date"`
	Service       string `json:"service"`
	Extras        string `json:"extras"`
	Notes         string `json:"notes,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	WhatsAppLink  string `json:"whatsapp_link"`
}

func toView(b model.Booking) bookingView {
	return bookingView{
		ID:            b.ID,
		Name:          b.Name,
		Location:      b.Location,
		Phone:         b.Phone,
		CustomerEmail: b.CustomerEmail,
		EventDate:     time.Time(b.EventDate).Format("2006-01-02"),
		Service:       b.Service,
		Extras:        b.Extras,
		Notes:         b.Notes,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		WhatsAppLink:  notify.Link(b.Phone),
	}
}

type BookingHandler struct {
	svc      *service.BookingService
	renderer receipt.Renderer
}

func NewBookingHandler(svc *service.BookingService, renderer receipt.Renderer) *BookingHandler {
	return &BookingHandler{svc: svc, renderer: renderer}
}

func (h *BookingHandler) Book(c echo.Context) error {
	var in service.CreateBookingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
	}

	booking, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{
				"error": ve.Error(),
				"field": ve.Field,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal booking failure"})
	}

	return c.JSON(http.StatusCreated, toView(*booking))
}

func (h *BookingHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
	}

	booking, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, toView(*booking))
}

// Receipt отдаёт PDF-квитанцию на скачивание.
func (h *BookingHandler) Receipt(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
	}

	booking, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return bookingError(c, err)
	}

	pdf, err := h.renderer.Render(booking)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to render receipt"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment;filename=booking_%d.pdf", booking.ID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

func (h *BookingHandler) Ping(c echo.Context) error {
	return c.String(http.StatusOK, "pong")
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// bookingError переводит ошибки сервиса в HTTP-статусы.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "booking not found"})
	case errors.Is(err, service.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, map[string]string{"error": "booking is not pending"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal failure"})
	}
}
