package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Database
	SQLiteDBPath string

	// Auth
	SecretKey string
	TokenTTL  time.Duration

	// Time handling
	Timezone string

	// Registration / verification
	EmailVerificationEnabled bool
	PendingRegistrationTTL   time.Duration
	SweepSchedule            string

	// Mail (verification codes)
	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string

	// Nutrition lookup
	FoodLookupBaseURL string
	FoodLookupTimeout time.Duration

	// Field and category role vocabulary for reporting. Substring matched,
	// case-insensitive; kept configurable so renamed fields keep working.
	Keywords KeywordConfig
}

type KeywordConfig struct {
	Energy         []string
	Duration       []string
	Name           []string
	Weight         []string
	IntakeCategory []string
	BurnCategory   []string
	SleepCategory  []string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8000"),
		SQLiteDBPath: getEnv("DB_PATH", filepath.Join("data", "lifetrack.db")),

		SecretKey: getEnv("SECRET_KEY", "change_me_in_production"),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 30*24*time.Hour),

		Timezone: getEnv("TZ", "UTC"),

		EmailVerificationEnabled: getEnvBool("EMAIL_VERIFICATION_ENABLED", true),
		PendingRegistrationTTL:   getEnvDuration("PENDING_REGISTRATION_TTL", 15*time.Minute),
		SweepSchedule:            getEnv("SWEEP_SCHEDULE", "*/5 * * * *"),

		MailHost:     getEnv("MAIL_SERVER", "smtp.gmail.com"),
		MailPort:     getEnvInt("MAIL_PORT", 587),
		MailUsername: getEnv("MAIL_USERNAME", ""),
		MailPassword: getEnv("MAIL_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", getEnv("MAIL_USERNAME", "")),

		FoodLookupBaseURL: getEnv("FOOD_LOOKUP_BASE_URL", "https://world.openfoodfacts.org"),
		FoodLookupTimeout: getEnvDuration("FOOD_LOOKUP_TIMEOUT", 10*time.Second),

		Keywords: KeywordConfig{
			Energy:         getEnvList("ENERGY_KEYWORDS", []string{"energie", "kcal", "kalorien"}),
			Duration:       getEnvList("DURATION_KEYWORDS", []string{"dauer"}),
			Name:           getEnvList("NAME_KEYWORDS", []string{"lebensmittel"}),
			Weight:         getEnvList("WEIGHT_KEYWORDS", []string{"gewicht"}),
			IntakeCategory: getEnvList("INTAKE_CATEGORY_KEYWORDS", []string{"ernährung", "essen"}),
			BurnCategory:   getEnvList("BURN_CATEGORY_KEYWORDS", []string{"fitness", "sport"}),
			SleepCategory:  getEnvList("SLEEP_CATEGORY_KEYWORDS", []string{"schlaf"}),
		},
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}
