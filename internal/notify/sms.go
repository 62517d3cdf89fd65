package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jagadha/event-booking/internal/config"
)

const fast2smsEndpoint = "https://www.fast2sms.com/dev/bulkV2"

// SMSChannel шлёт короткие СМС клиенту через Fast2SMS. Задействован
// только на итоговых статусах: на Created клиент и так видит страницу
// подтверждения, а суточный отчёт не имеет номера получателя.
type SMSChannel struct {
	cfg      config.SMSConfig
	endpoint string
	client   *http.Client
}

func NewSMSChannel(cfg config.SMSConfig) *SMSChannel {
	return &SMSChannel{cfg: cfg, endpoint: fast2smsEndpoint, client: &http.Client{}}
}

func (c *SMSChannel) Name() string { return "sms" }

func (c *SMSChannel) Enabled() bool { return c.cfg.Enabled() }

func (c *SMSChannel) Send(ctx context.Context, event Event) error {
	b := event.Booking

	var message string
	switch event.Kind {
	case EventConfirmed:
		message = fmt.Sprintf("🎉 Your booking for %s is CONFIRMED!", formatDate(b.EventDate))
	case EventRejected:
		message = fmt.Sprintf("❌ Sorry, your booking on %s was rejected.", formatDate(b.EventDate))
	default:
		return &SkipError{Reason: fmt.Sprintf("no sms for %s events", event.Kind)}
	}

	form := url.Values{
		"sender_id": {c.cfg.SenderID},
		"message":   {message},
		"language":  {"english"},
		"route":     {"v3"},
		"numbers":   {b.Phone},
	}
	headers := map[string]string{"authorization": c.cfg.Fast2SMSAPIKey}

	if err := postForm(ctx, c.client, c.endpoint, headers, form); err != nil {
		return fmt.Errorf("fast2sms: %w", err)
	}
	return nil
}
