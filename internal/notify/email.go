package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/datatypes"

	"github.com/jagadha/event-booking/internal/config"
	"github.com/jagadha/event-booking/internal/logger"
	"github.com/jagadha/event-booking/internal/model"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// Человекочитаемые подписи статуса и их тамильские переводы —
// фиксированный справочник по виду события. Неизвестный вид
// получает общую подпись.
var statusLabels = map[EventKind]string{
	EventCreated:   "🎉 Booking Received",
	EventConfirmed: "✅ Booking Confirmed",
	EventRejected:  "❌ Booking Rejected",
}

var tamilLabels = map[EventKind]string{
	EventCreated:   "உங்கள் முன்பதிவு பெறப்பட்டது",
	EventConfirmed: "உங்கள் முன்பதிவு உறுதிசெய்யப்பட்டது",
	EventRejected:  "மன்னிக்கவும் — உங்கள் முன்பதிவு நிராகரிக்கப்பட்டது",
}

func statusLabel(kind EventKind) string {
	if label, ok := statusLabels[kind]; ok {
		return label
	}
	return "🎉 Booking Update"
}

func tamilLabel(kind EventKind) string {
	if label, ok := tamilLabels[kind]; ok {
		return label
	}
	return "நிலையை புதுப்பித்தல்"
}

// ReceiptRenderer отдаёт готовый PDF-документ по бронированию.
// Содержимое для рассылки непрозрачно.
type ReceiptRenderer interface {
	Render(b *model.Booking) ([]byte, error)
}

// ---- Brevo payloads ----

type brevoRecipient struct {
	Email string `json:"email"`
}

type brevoAttachment struct {
	// Brevo ждёт содержимое в base64
	Content string `json:"content"`
	Name    string `json:"name"`
}

type brevoEmail struct {
	Sender      brevoRecipient    `json:"sender"`
	To          []brevoRecipient  `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

// EmailChannel шлёт транзакционные письма через Brevo: всегда админу
// и, если указан, клиенту. К письмам по бронированию прикладывается
// PDF-квитанция; её отсутствие письмо не отменяет.
type EmailChannel struct {
	cfg      config.EmailConfig
	siteURL  string
	renderer ReceiptRenderer
	endpoint string
	client   *http.Client
	log      *slog.Logger
}

func NewEmailChannel(cfg config.EmailConfig, siteURL string, renderer ReceiptRenderer) *EmailChannel {
	return &EmailChannel{
		cfg:      cfg,
		siteURL:  siteURL,
		renderer: renderer,
		endpoint: brevoEndpoint,
		client:   &http.Client{},
		log:      logger.Log,
	}
}

func (c *EmailChannel) Name() string { return "email" }

// Enabled: без адреса админа канал выключен целиком, а не только
// клиентская часть.
func (c *EmailChannel) Enabled() bool { return c.cfg.Enabled() }

func (c *EmailChannel) Send(ctx context.Context, event Event) error {
	to := []brevoRecipient{{Email: c.cfg.AdminEmail}}

	var subject, html string
	var atts []brevoAttachment

	if event.Kind == EventDailyReport {
		if event.Report == nil {
			return &SkipError{Reason: "report event without report data"}
		}
		subject = fmt.Sprintf("Daily Bookings Report (%s)", event.Report.Date.Format("2006-01-02"))
		html = c.reportHTML(*event.Report)
	} else {
		b := event.Booking
		if b == nil {
			return &SkipError{Reason: "booking event without booking snapshot"}
		}
		if b.CustomerEmail != "" {
			to = append(to, brevoRecipient{Email: b.CustomerEmail})
		}
		subject = fmt.Sprintf("%s - %s", statusLabel(event.Kind), b.Name)
		html = c.bookingHTML(event.Kind, b)

		// Квитанция прикладывается best-effort: если рендер упал,
		// письмо уходит без вложения.
		if pdf, err := c.renderer.Render(b); err != nil {
			c.log.Error("receipt render failed, sending email without attachment",
				"event", event.ID, "booking", b.ID, "err", err)
		} else {
			atts = append(atts, brevoAttachment{
				Content: base64.StdEncoding.EncodeToString(pdf),
				Name:    fmt.Sprintf("booking_%d.pdf", b.ID),
			})
		}
	}

	payload := brevoEmail{
		Sender:      brevoRecipient{Email: c.cfg.AdminEmail},
		To:          to,
		Subject:     subject,
		HTMLContent: html,
		Attachment:  atts,
	}

	headers := map[string]string{"api-key": c.cfg.BrevoAPIKey}
	if err := postJSON(ctx, c.client, c.endpoint, headers, payload); err != nil {
		return fmt.Errorf("brevo: %w", err)
	}
	return nil
}

func (c *EmailChannel) bookingHTML(kind EventKind, b *model.Booking) string {
	notes := b.Notes
	if notes == "" {
		notes = "-"
	}

	return fmt.Sprintf(`<!DOCTYPE html><html><body style="font-family: Arial, sans-serif; background:#f7f7f7; margin:0; padding:0;">
<div style="max-width:600px; margin:18px auto; background:#fff; border-radius:10px; overflow:hidden; box-shadow:0 4px 20px rgba(0,0,0,0.08);">
  <div style="background:#f9c5d5; padding:18px; text-align:center;">
    <h2 style="margin:0; color:#b01357;">❤️ JAGADHA A to Z Event Management ❤️</h2>
  </div>
  <div style="padding:18px; color:#333;">
    <h3>%s</h3>
    <p>Dear <b>%s</b>,</p>
    <p>Your booking details:</p>
    <table style="width:100%%; font-size:14px;">
      <tr><td><b>📛 Name:</b></td><td>%s</td></tr>
      <tr><td><b>📞 Phone:</b></td><td>%s</td></tr>
      <tr><td><b>📧 Email:</b></td><td>%s</td></tr>
      <tr><td><b>📅 Event Date:</b></td><td>%s</td></tr>
      <tr><td><b>🎈 Service:</b></td><td>%s</td></tr>
      <tr><td><b>✨ Extras:</b></td><td>%s</td></tr>
      <tr><td><b>📍 Location:</b></td><td>%s</td></tr>
    </table>

    <p style="margin-top:12px;"><b>Notes:</b> %s</p>

    <hr>
    <p><b>தமிழில்: </b>%s</p>
    <p style="font-size:13px; color:#666;">(மேலும் உதவிக்கு எங்களைத் தொடர்பு கொள்ளவும். Mob: 96597 96217)</p>

    <div style="text-align:center; margin:16px 0;">
      <a href="%s" style="background:#b01357; color:white; padding:10px 18px; text-decoration:none; border-radius:6px;">Visit Our Website</a>
    </div>
  </div>
  <div style="background:#fafafa; padding:12px; text-align:center; font-size:12px;">
    © 2025 JAGADHA A to Z Event Management — Automated message
  </div>
</div>
</body></html>`,
		statusLabel(kind),
		b.Name,
		b.Name,
		b.Phone,
		b.CustomerEmail,
		formatDate(b.EventDate),
		b.Service,
		b.Extras,
		b.Location,
		notes,
		tamilLabel(kind),
		c.siteURL,
	)
}

func (c *EmailChannel) reportHTML(r ReportData) string {
	rows := ""
	for _, st := range []model.BookingStatus{
		model.BookingStatusPending,
		model.BookingStatusConfirmed,
		model.BookingStatusRejected,
	} {
		if cnt, ok := r.Counts[st]; ok {
			rows += fmt.Sprintf("<tr><td><b>%s:</b></td><td>%d</td></tr>", st, cnt)
		}
	}

	return fmt.Sprintf(`<!DOCTYPE html><html><body style="font-family: Arial, sans-serif;">
<h2>📊 Daily Bookings Report (%s)</h2>
<table style="font-size:14px;">
  <tr><td><b>Total:</b></td><td>%d</td></tr>
  %s
</table>
<p style="font-size:12px; color:#666;">© 2025 JAGADHA A to Z Event Management — Automated message</p>
</body></html>`,
		r.Date.Format("2006-01-02"), r.Total, rows)
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}
