package config

import (
	"log"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Local     LocalStoreConfig
	JWT       JWTConfig
	OTP       OTPConfig
	Checkout  CheckoutConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// IsDevelopment reports whether development-only fallbacks are allowed
func (a AppConfig) IsDevelopment() bool {
	return a.Env == "development"
}

// DatabaseConfig describes the networked (remote) store
type DatabaseConfig struct {
	Enabled  bool
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	RawDSN   string
	Timeout  time.Duration
	Cooldown time.Duration
}

// LocalStoreConfig describes the embedded on-device store
type LocalStoreConfig struct {
	Path string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type OTPConfig struct {
	BaseURL         string
	Timeout         time.Duration
	OfflineFallback bool
	ClientID        string
	ClientSecret    string
	TokenURL        string
}

type CheckoutConfig struct {
	ReceiptMaxAttempts int
	DevHistoryLookup   bool
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Enabled:  viper.GetBool("REMOTE_DB_ENABLED"),
			Driver:   viper.GetString("REMOTE_DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
			RawDSN:   viper.GetString("REMOTE_DB_DSN"),
			Timeout:  time.Duration(viper.GetInt("REMOTE_TIMEOUT_MS")) * time.Millisecond,
			Cooldown: time.Duration(viper.GetInt("REMOTE_COOLDOWN_MS")) * time.Millisecond,
		},
		Local: LocalStoreConfig{
			Path: viper.GetString("LOCAL_DB_PATH"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		OTP: OTPConfig{
			BaseURL:         viper.GetString("OTP_BASE_URL"),
			Timeout:         time.Duration(viper.GetInt("OTP_TIMEOUT_MS")) * time.Millisecond,
			OfflineFallback: viper.GetBool("OTP_OFFLINE_FALLBACK"),
			ClientID:        viper.GetString("OTP_CLIENT_ID"),
			ClientSecret:    viper.GetString("OTP_CLIENT_SECRET"),
			TokenURL:        viper.GetString("OTP_TOKEN_URL"),
		},
		Checkout: CheckoutConfig{
			ReceiptMaxAttempts: viper.GetInt("RECEIPT_MAX_ATTEMPTS"),
			DevHistoryLookup:   viper.GetBool("DEV_HISTORY_LOOKUP"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "scango-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)

	viper.SetDefault("REMOTE_DB_ENABLED", false)
	viper.SetDefault("REMOTE_DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "scango")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("REMOTE_TIMEOUT_MS", 2000)
	viper.SetDefault("REMOTE_COOLDOWN_MS", 10000)

	viper.SetDefault("LOCAL_DB_PATH", "./storage/scango.db")

	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)

	viper.SetDefault("OTP_BASE_URL", "")
	viper.SetDefault("OTP_TIMEOUT_MS", 3000)
	viper.SetDefault("OTP_OFFLINE_FALLBACK", true)

	viper.SetDefault("RECEIPT_MAX_ATTEMPTS", 5)
	viper.SetDefault("DEV_HISTORY_LOOKUP", false)

	viper.SetDefault("PRINTER_TYPE", "none")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 30)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
}

// DSN builds the driver-specific connection string. REMOTE_DB_DSN wins when set.
func (c *DatabaseConfig) DSN() string {
	if c.RawDSN != "" {
		return c.RawDSN
	}
	if c.Driver == "mysql" {
		return c.User + ":" + c.Password +
			"@tcp(" + c.Host + ":" + c.Port + ")/" + c.Name +
			"?charset=utf8mb4&parseTime=True&loc=" + url.QueryEscape(c.Timezone)
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
