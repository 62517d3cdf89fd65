package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jagadha/event-booking/internal/config"
)

// TelegramChannel — админский push в чат: алерты о новых бронированиях
// и суточный отчёт.
type TelegramChannel struct {
	cfg     config.TelegramConfig
	baseURL string
	client  *http.Client
}

func NewTelegramChannel(cfg config.TelegramConfig) *TelegramChannel {
	return &TelegramChannel{cfg: cfg, baseURL: "https://api.telegram.org", client: &http.Client{}}
}

func (c *TelegramChannel) Name() string { return "telegram" }

func (c *TelegramChannel) Enabled() bool { return c.cfg.Enabled() }

func (c *TelegramChannel) Send(ctx context.Context, event Event) error {
	var text string
	switch event.Kind {
	case EventCreated:
		b := event.Booking
		text = fmt.Sprintf("📩 New Booking #%d\n👤 %s\n🎈 %s\n📅 %s",
			b.ID, b.Name, b.Service, formatDate(b.EventDate))
	case EventDailyReport:
		text = event.Report.Text()
	default:
		return &SkipError{Reason: fmt.Sprintf("no telegram push for %s events", event.Kind)}
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.cfg.BotToken)
	form := url.Values{
		"chat_id": {c.cfg.ChatID},
		"text":    {text},
	}

	if err := postForm(ctx, c.client, endpoint, nil, form); err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	return nil
}
