package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/jagadha/event-booking/internal/config"
	"github.com/jagadha/event-booking/internal/db"
	"github.com/jagadha/event-booking/internal/handlers"
	"github.com/jagadha/event-booking/internal/logger"
	"github.com/jagadha/event-booking/internal/model"
	"github.com/jagadha/event-booking/internal/notify"
	"github.com/jagadha/event-booking/internal/receipt"
	"github.com/jagadha/event-booking/internal/repository"
	"github.com/jagadha/event-booking/internal/scheduler"
	"github.com/jagadha/event-booking/internal/service"
)

func main() {
	// .env подхватывается, если есть; в проде переменные приходят извне.
	_ = godotenv.Load()

	// 1. Загружаем конфиг из env.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	closeLog, err := logger.Setup(os.Getenv("LOG_FILE"))
	if err != nil {
		log.Fatalf("setup logger: %v", err)
	}
	defer closeLog()

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Репозиторий (реализация на GORM).
	bookingRepo := repository.NewGormBookingRepository(gormDB)

	// 5. Каналы уведомлений и диспетчер. Выключенные по конфигу каналы
	// регистрируются всё равно — диспетчер сам помечает их Skipped.
	renderer := receipt.NewPDFRenderer()
	dispatcher := notify.NewDispatcher([]notify.Channel{
		notify.NewEmailChannel(cfg.Email, cfg.HTTP.SiteURL, renderer),
		notify.NewSMSChannel(cfg.SMS),
		notify.NewWhatsAppChannel(cfg.WhatsApp),
		notify.NewTelegramChannel(cfg.Telegram),
	})

	// 6. Сервисы.
	bookingSvc := service.NewBookingService(bookingRepo, dispatcher)
	reportSvc := service.NewReportService(bookingRepo)

	// 7. Суточный отчёт: один взвод на процесс.
	reporter := scheduler.NewDailyReporter(reportSvc, dispatcher, cfg.Report.Hour, cfg.Report.Minute)
	reporter.Start()

	// 8. HTTP-сервер.
	e := echo.New()
	e.HideBanner = true
	handlers.RegisterRoutes(
		e,
		handlers.NewBookingHandler(bookingSvc, renderer),
		handlers.NewAdminHandler(bookingSvc),
		handlers.NewAuthHandler(cfg.Admin),
		cfg.Admin.JWTSecret,
	)

	logger.Log.Info("booking server listening", "addr", cfg.HTTP.Addr)

	go func() {
		if err := e.Start(cfg.HTTP.Addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// 9. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("shutting down...")
	reporter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Log.Error("http shutdown", "err", err)
	}
}
