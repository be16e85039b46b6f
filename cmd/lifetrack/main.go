package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lifetrack/internal/api"
	"lifetrack/internal/config"
	"lifetrack/internal/db"
	"lifetrack/internal/mail"
	"lifetrack/internal/nutrition"
	"lifetrack/internal/reporting"
	"lifetrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	cfg := config.Load()

	location := mustLoadLocation(cfg.Timezone)
	time.Local = location

	database, err := db.OpenSQLite(cfg.SQLiteDBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	var mailer mail.Mailer = mail.LogMailer{}
	if cfg.MailUsername != "" {
		mailer = mail.NewSMTPMailer(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword, cfg.MailFrom)
	}

	handler := api.NewHandler(database, api.HandlerConfig{
		SecretKey: cfg.SecretKey,
		TokenTTL:  cfg.TokenTTL,
		Location:  location,
		Vocabulary: reporting.Vocabulary{
			Energy:         cfg.Keywords.Energy,
			Duration:       cfg.Keywords.Duration,
			Name:           cfg.Keywords.Name,
			Weight:         cfg.Keywords.Weight,
			IntakeCategory: cfg.Keywords.IntakeCategory,
			BurnCategory:   cfg.Keywords.BurnCategory,
			SleepCategory:  cfg.Keywords.SleepCategory,
		},
		Mailer:                 mailer,
		VerificationEnabled:    cfg.EmailVerificationEnabled,
		PendingRegistrationTTL: cfg.PendingRegistrationTTL,
		FoodLookup:             nutrition.NewClient(cfg.FoodLookupBaseURL, cfg.FoodLookupTimeout),
	})

	app := fiber.New(fiber.Config{
		AppName:               "Lifetrack",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	api.RegisterRoutes(app, handler)

	sweeper := services.NewSweeperService(db.NewRepositories(database).Users, cfg.PendingRegistrationTTL, location)
	if cfg.EmailVerificationEnabled {
		if err := sweeper.Start(cfg.SweepSchedule); err != nil {
			log.Fatalf("sweeper init failed: %v", err)
		}
		defer sweeper.Stop()
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Lifetrack listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.SQLiteDBPath, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
