package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("SHEETS_WEBHOOK_URL", "")
	t.Setenv("SHEETS_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, "development", cfg.Server.Env)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.Sheets.WebhookURL)
	assert.Equal(t, 15*time.Second, cfg.Sheets.Timeout)
	assert.Equal(t, 14, cfg.Sheets.RetentionDays)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("SHEETS_TIMEOUT", "3s")
	t.Setenv("SUBMISSIONS_RETENTION_DAYS", "not-a-number")
	t.Setenv("R2_PUBLIC_URL", "https://cdn.example.com/")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3*time.Second, cfg.Sheets.Timeout)
	assert.Equal(t, 14, cfg.Sheets.RetentionDays)
	assert.Equal(t, "https://cdn.example.com", cfg.R2.PublicURL)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p", DBName: "site"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=site sslmode=disable", d.DSN())

	d.URL = "postgres://u:p@db/site"
	assert.Equal(t, "postgres://u:p@db/site", d.DSN())
}
