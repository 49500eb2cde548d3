package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "scango-api", cfg.App.Name)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, 2*time.Second, cfg.Database.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Database.Cooldown)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, 5, cfg.Checkout.ReceiptMaxAttempts)
	assert.False(t, cfg.Checkout.DevHistoryLookup)
	assert.True(t, cfg.OTP.OfflineFallback)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("REMOTE_TIMEOUT_MS", "750")
	t.Setenv("RECEIPT_MAX_ATTEMPTS", "9")
	cfg := Load()

	assert.False(t, cfg.App.IsDevelopment())
	assert.Equal(t, 750*time.Millisecond, cfg.Database.Timeout)
	assert.Equal(t, 9, cfg.Checkout.ReceiptMaxAttempts)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	pg := DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", Name: "scango", User: "app", Password: "pw", SSLMode: "disable", Timezone: "Asia/Kolkata"}
	assert.Equal(t, "host=db user=app password=pw dbname=scango port=5432 sslmode=disable TimeZone=Asia/Kolkata", pg.DSN())

	my := DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306", Name: "scango", User: "app", Password: "pw", Timezone: "Asia/Kolkata"}
	assert.Equal(t, "app:pw@tcp(db:3306)/scango?charset=utf8mb4&parseTime=True&loc=Asia%2FKolkata", my.DSN())

	raw := DatabaseConfig{Driver: "mysql", RawDSN: "custom"}
	assert.Equal(t, "custom", raw.DSN())
}
