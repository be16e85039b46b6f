package api

import (
	"time"

	"lifetrack/internal/db"
	"lifetrack/internal/mail"
	"lifetrack/internal/nutrition"
	"lifetrack/internal/reporting"
	"lifetrack/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const contextUserKey = "current_user"

const defaultAuthTokenTTL = 30 * 24 * time.Hour

type Handler struct {
	db         *gorm.DB
	secretKey  []byte
	tokenTTL   time.Duration
	location   *time.Location
	vocabulary reporting.Vocabulary
	foodLookup *nutrition.Client

	repositories    *db.Repositories
	authService     *services.AuthService
	settingsService *services.SettingsService
	seedService     *services.SeedService
}

// HandlerConfig collects everything a Handler needs besides the database.
type HandlerConfig struct {
	SecretKey              string
	TokenTTL               time.Duration
	Location               *time.Location
	Vocabulary             reporting.Vocabulary
	Mailer                 mail.Mailer
	VerificationEnabled    bool
	PendingRegistrationTTL time.Duration
	FoodLookup             *nutrition.Client
}

func NewHandler(database *gorm.DB, cfg HandlerConfig) *Handler {
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	tokenTTL := cfg.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultAuthTokenTTL
	}
	mailer := cfg.Mailer
	if mailer == nil {
		mailer = mail.LogMailer{}
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		db:              database,
		secretKey:       []byte(cfg.SecretKey),
		tokenTTL:        tokenTTL,
		location:        location,
		vocabulary:      cfg.Vocabulary,
		foodLookup:      cfg.FoodLookup,
		repositories:    repositories,
		authService:     services.NewAuthService(repositories.Users, mailer, cfg.VerificationEnabled, cfg.PendingRegistrationTTL),
		settingsService: services.NewSettingsService(repositories.Users),
		seedService:     services.NewSeedService(repositories.Categories),
	}
}

type authClaims struct {
	UserID uint   `json:"uid"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}
