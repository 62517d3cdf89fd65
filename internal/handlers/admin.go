package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jagadha/event-booking/internal/model"
	"github.com/jagadha/event-booking/internal/service"
)

// AdminHandler — админские операции над бронированиями. Все маршруты
// закрыты JWTAuthMiddleware.
type AdminHandler struct {
	svc *service.BookingService
}

func NewAdminHandler(svc *service.BookingService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) List(c echo.Context) error {
	bookings, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list bookings"})
	}

	views := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, toView(b))
	}
	return c.JSON(http.StatusOK, map[string]any{"bookings": views})
}

func (h *AdminHandler) ExportCSV(c echo.Context) error {
	bookings, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list bookings"})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "name", "phone", "email", "location", "event_date", "service", "extras", "notes", "status", "created_at"})
	for _, b := range bookings {
		_ = w.Write([]string{
			fmt.Sprintf("%d", b.ID),
			b.Name,
			b.Phone,
			b.CustomerEmail,
			b.Location,
			time.Time(b.EventDate).Format("2006-01-02"),
			b.Service,
			b.Extras,
			b.Notes,
			string(b.Status),
			b.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to build csv"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment;filename=bookings.csv")
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// Confirm переводит бронирование в Confirmed. Повторный вызов по тому же
// id возвращает 409 — дубликат клика не перезапускает уведомления.
func (h *AdminHandler) Confirm(c echo.Context) error {
	return h.transition(c, h.svc.Confirm)
}

func (h *AdminHandler) Reject(c echo.Context) error {
	return h.transition(c, h.svc.Reject)
}

func (h *AdminHandler) transition(
	c echo.Context,
	op func(ctx context.Context, id uint) (*model.Booking, error),
) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
	}

	booking, err := op(c.Request().Context(), id)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, toView(*booking))
}

func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
