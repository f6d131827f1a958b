package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const EnvProduction = "production"

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Sheets    SheetsConfig
	Email     EmailConfig
	R2        R2Config
	Cron      CronConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Env         string
	Port        string
	SiteURL     string
	CORSOrigins string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type AdminConfig struct {
	Email        string
	PasswordHash string
}

// SheetsConfig holds the spreadsheet webhook settings. WebhookURL may be
// empty; the proxy decides what that means at the point of use.
type SheetsConfig struct {
	WebhookURL    string
	Secret        string
	Timeout       time.Duration
	FallbackDir   string
	RetentionDays int
}

type EmailConfig struct {
	ResendAPIKey string
	APIURL       string
	From         string
	OfficeEmail  string
}

type R2Config struct {
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

type CronConfig struct {
	DigestSchedule  string
	CleanupSchedule string
}

type RateLimitConfig struct {
	FormMax    int
	FormWindow time.Duration
}

func Load() *Config {
	godotenv.Load() // a missing .env falls back to the process environment

	return &Config{
		Server: ServerConfig{
			Env:         getEnv("APP_ENV", "development"),
			Port:        getEnv("PORT", "3000"),
			SiteURL:     getEnv("SITE_URL", "http://localhost:3001"),
			CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "propsite"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			TTL:    getEnvDuration("JWT_TTL", 12*time.Hour),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Sheets: SheetsConfig{
			WebhookURL:    getEnv("SHEETS_WEBHOOK_URL", ""),
			Secret:        getEnv("SHEETS_SECRET", ""),
			Timeout:       getEnvDuration("SHEETS_TIMEOUT", 15*time.Second),
			FallbackDir:   getEnv("SUBMISSIONS_DIR", "data/submissions"),
			RetentionDays: getEnvInt("SUBMISSIONS_RETENTION_DAYS", 14),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			APIURL:       getEnv("RESEND_API_URL", "https://api.resend.com/emails"),
			From:         getEnv("EMAIL_FROM", "Property Enquiries <noreply@example.com>"),
			OfficeEmail:  getEnv("OFFICE_EMAIL", ""),
		},
		R2: R2Config{
			AccountID: getEnv("R2_ACCOUNT_ID", ""),
			AccessKey: getEnv("R2_ACCESS_KEY", ""),
			SecretKey: getEnv("R2_SECRET_KEY", ""),
			Bucket:    getEnv("R2_BUCKET_NAME", ""),
			PublicURL: strings.TrimSuffix(getEnv("R2_PUBLIC_URL", ""), "/"),
		},
		Cron: CronConfig{
			DigestSchedule:  getEnv("DIGEST_SCHEDULE", "0 8 * * *"),
			CleanupSchedule: getEnv("CLEANUP_SCHEDULE", "0 3 * * *"),
		},
		RateLimit: RateLimitConfig{
			FormMax:    getEnvInt("FORM_RATE_LIMIT", 10),
			FormWindow: getEnvDuration("FORM_RATE_WINDOW", time.Minute),
		},
	}
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, EnvProduction)
}

// DSN returns DATABASE_URL when set, otherwise a DSN built from the parts.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.DBName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
