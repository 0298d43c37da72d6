package config

import (
	"log"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret       = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer       = "currency-purchase-api"
	defaultCacheDuration   = 10 * time.Minute
	defaultProviderTimeout = 5 * time.Second
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	LogLevel          string
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Purchase pricing
	ServiceFeePercentage  decimal.Decimal
	DefaultCurrency       string
	CurrencyCacheDuration time.Duration

	// Quote provider
	RateProviderBaseURL string
	CurrencyImportURL   string
	RateProviderTimeout time.Duration

	LoginRateLimit string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("SERVICE_FEE_PERCENTAGE", "2.00")
	viper.SetDefault("DEFAULT_CURRENCY", "BRL")
	viper.SetDefault("CURRENCY_CACHE_DURATION", "10")
	viper.SetDefault("RATE_PROVIDER_BASE_URL", "https://economia.awesomeapi.com.br/json")
	viper.SetDefault("CURRENCY_IMPORT_URL", "https://economia.awesomeapi.com.br/xml/available")
	viper.SetDefault("RATE_PROVIDER_TIMEOUT", "5s")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = parseDuration("JWT_EXPIRY_DURATION", time.Hour)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	feeStr := viper.GetString("SERVICE_FEE_PERCENTAGE")
	fee, err := decimal.NewFromString(feeStr)
	if err != nil || fee.IsNegative() {
		fee = decimal.NewFromInt(2)
		log.Printf("Warning: Invalid value for SERVICE_FEE_PERCENTAGE ('%s'). Defaulting to %s.\n", feeStr, fee.StringFixed(2))
	}
	cfg.ServiceFeePercentage = fee

	cfg.DefaultCurrency = strings.ToUpper(viper.GetString("DEFAULT_CURRENCY"))
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "BRL"
	}

	cfg.CurrencyCacheDuration = parseMinutesOrDuration("CURRENCY_CACHE_DURATION", defaultCacheDuration)
	cfg.RateProviderTimeout = parseDuration("RATE_PROVIDER_TIMEOUT", defaultProviderTimeout)

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in is disabled.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.RateProviderBaseURL = strings.TrimRight(viper.GetString("RATE_PROVIDER_BASE_URL"), "/")
	cfg.CurrencyImportURL = viper.GetString("CURRENCY_IMPORT_URL")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	return cfg, nil
}

// SlogLevel maps LogLevel ("debug", "info", "warn", "error") to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

// parseMinutesOrDuration accepts a bare integer as minutes, or any Go duration string.
func parseMinutesOrDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(viper.GetString(key))
	if minutes, err := strconv.Atoi(raw); err == nil {
		if minutes <= 0 {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
			return fallback
		}
		return time.Duration(minutes) * time.Minute
	}
	return parseDuration(key, fallback)
}
