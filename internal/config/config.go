package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type DBConfig struct {
	// Драйвер: "sqlite" для локального файла, "postgres" для прода.
	Driver string `envconfig:"DB_DRIVER" default:"sqlite"`

	SQLitePath string `envconfig:"DB_SQLITE_PATH" default:"instance/bookings.db"`

	Host            string `envconfig:"DB_HOST" default:"postgres"`
	Port            int    `envconfig:"DB_PORT" default:"5432"`
	User            string `envconfig:"DB_USER" default:"booking"`
	Password        string `envconfig:"DB_PASSWORD" default:"booking"`
	Name            string `envconfig:"DB_NAME" default:"booking_db"`
	SSLMode         string `envconfig:"DB_SSLMODE" default:"disable"`
	TimeZone        string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`
	MaxOpenConns    int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifeTime int    `envconfig:"DB_CONN_MAX_LIFETIME_MIN" default:"30"` // минут
}

type HTTPConfig struct {
	Addr    string `envconfig:"HTTP_ADDR" default:":5000"`
	SiteURL string `envconfig:"SITE_URL" default:"http://localhost:5000"`
}

type AdminConfig struct {
	User      string `envconfig:"ADMIN_USER" default:"admin"`
	Password  string `envconfig:"ADMIN_PASS" default:"admin123"`
	JWTSecret string `envconfig:"JWT_SECRET" default:"change_this_secret_key"`
}

// EmailConfig — Brevo. Канал включён только при наличии ключа И адреса админа:
// без адреса админа письмо отправлять некому, канал выключается целиком.
type EmailConfig struct {
	BrevoAPIKey string `envconfig:"BREVO_API_KEY"`
	AdminEmail  string `envconfig:"ADMIN_EMAIL"`
}

func (c EmailConfig) Enabled() bool {
	return c.BrevoAPIKey != "" && c.AdminEmail != ""
}

type SMSConfig struct {
	Fast2SMSAPIKey string `envconfig:"FAST2SMS_API_KEY"`
	SenderID       string `envconfig:"FAST2SMS_SENDER_ID" default:"TXTIND"`
}

func (c SMSConfig) Enabled() bool {
	return c.Fast2SMSAPIKey != ""
}

type WhatsAppConfig struct {
	Instance string `envconfig:"W_INSTANCE"`
	Token    string `envconfig:"W_TOKEN"`
}

func (c WhatsAppConfig) Enabled() bool {
	return c.Instance != "" && c.Token != ""
}

type TelegramConfig struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatID   string `envconfig:"TELEGRAM_CHAT_ID"`
}

func (c TelegramConfig) Enabled() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// ReportConfig — время единственного суточного срабатывания отчёта
// (серверное локальное время).
type ReportConfig struct {
	Hour   int `envconfig:"REPORT_HOUR" default:"8"`
	Minute int `envconfig:"REPORT_MINUTE" default:"0"`
}

type Config struct {
	DB       DBConfig
	HTTP     HTTPConfig
	Admin    AdminConfig
	Email    EmailConfig
	SMS      SMSConfig
	WhatsApp WhatsAppConfig
	Telegram TelegramConfig
	Report   ReportConfig
}

// Load читает конфиг из env. Признаки Enabled у каналов вычисляются
// один раз здесь, по наличию обязательных ключей, — дальше по коду
// проверок на пустые креды быть не должно.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	// минимальная валидация
	switch cfg.DB.Driver {
	case "sqlite":
		if cfg.DB.SQLitePath == "" {
			return nil, fmt.Errorf("invalid DB config: sqlite path must not be empty")
		}
	case "postgres":
		if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, fmt.Errorf("invalid DB config: host/user/name must not be empty")
		}
	default:
		return nil, fmt.Errorf("invalid DB config: unknown driver %q", cfg.DB.Driver)
	}

	if cfg.Report.Hour < 0 || cfg.Report.Hour > 23 || cfg.Report.Minute < 0 || cfg.Report.Minute > 59 {
		return nil, fmt.Errorf("invalid report trigger time %02d:%02d", cfg.Report.Hour, cfg.Report.Minute)
	}

	return &cfg, nil
}
