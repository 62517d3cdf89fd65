package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jagadha/event-booking/internal/config"
	"github.com/jagadha/event-booking/internal/logger"
)

// Link строит wa.me-ссылку «нажми и напиши» для номера клиента.
// Это запасной путь WhatsApp: сам диспетчер по ссылке не ходит,
// она отдаётся пользовательским страницам и письмам.
func Link(phone string) string {
	return fmt.Sprintf("https://wa.me/91%s?text=%s",
		phone,
		url.QueryEscape("Hello JAGADHA, I want to discuss my booking."))
}

// WhatsAppChannel шлёт сообщение клиенту через UltraMsg API.
// Без instance+token канал выключен, и рабочей остаётся только
// wa.me-ссылка (см. Link).
type WhatsAppChannel struct {
	cfg     config.WhatsAppConfig
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

func NewWhatsAppChannel(cfg config.WhatsAppConfig) *WhatsAppChannel {
	return &WhatsAppChannel{
		cfg:     cfg,
		baseURL: "https://api.ultramsg.com",
		client:  &http.Client{},
		log:     logger.Log,
	}
}

func (c *WhatsAppChannel) Name() string { return "whatsapp" }

func (c *WhatsAppChannel) Enabled() bool { return c.cfg.Enabled() }

func (c *WhatsAppChannel) Send(ctx context.Context, event Event) error {
	switch event.Kind {
	case EventCreated, EventConfirmed:
	default:
		return &SkipError{Reason: fmt.Sprintf("no whatsapp for %s events", event.Kind)}
	}
	b := event.Booking

	message := fmt.Sprintf(
		"🌸 JAGADHA A to Z Event Management 🌸\n\n"+
			"Booking Update\n"+
			"Name: %s\n"+
			"Phone: %s\n"+
			"Date: %s\n"+
			"Service: %s\n"+
			"Location: %s\n\n"+
			"Thank you!",
		b.Name, b.Phone, formatDate(b.EventDate), b.Service, b.Location,
	)

	endpoint := fmt.Sprintf("%s/%s/messages/chat", c.baseURL, c.cfg.Instance)
	form := url.Values{
		"token": {c.cfg.Token},
		"to":    {"91" + b.Phone},
		"body":  {message},
	}

	if err := postForm(ctx, c.client, endpoint, nil, form); err != nil {
		// API не ответил — клиенту остаётся wa.me-ссылка на страницах
		// и в письмах, самим ничего не доотправляем.
		c.log.Warn("whatsapp api failed, wa.me link remains available",
			"event", event.ID, "link", Link(b.Phone), "err", err)
		return fmt.Errorf("ultramsg: %w", err)
	}
	return nil
}
