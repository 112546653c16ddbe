package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Email     EmailConfig
	Redis     RedisConfig
	Admin     AdminConfig
	Presence  PresenceConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string

	// SiteAccessPassword gates the storefront; empty disables the gate.
	SiteAccessPassword string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	// OrderTo receives every order notification.
	OrderTo        string
	CopyToCustomer bool
}

// Enabled reports whether an SMTP server is configured.
func (c EmailConfig) Enabled() bool {
	return c.Host != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AdminConfig struct {
	Email    string
	Password string
}

type PresenceConfig struct {
	OnlineWindowMinutes int
}

func (c PresenceConfig) Window() time.Duration {
	return time.Duration(c.OnlineWindowMinutes) * time.Minute
}

type RateLimitConfig struct {
	AuthPerMinute int
	AuthBurst     int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "storefront")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("ORDER_COPY_TO_CUSTOMER", false)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ONLINE_WINDOW_MINUTES", 5)
	viper.SetDefault("AUTH_RATE_PER_MINUTE", 20)
	viper.SetDefault("AUTH_RATE_BURST", 5)

	if err := viper.ReadInConfig(); err != nil {
		// environment-only deployments have no .env file
		if !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:               viper.GetString("APP_NAME"),
			Port:               viper.GetString("PORT"),
			Debug:              viper.GetBool("DEBUG"),
			LogPath:            viper.GetString("LOG_PATH"),
			SiteAccessPassword: viper.GetString("SITE_ACCESS_PASSWORD"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:           viper.GetString("SMTP_HOST"),
			Port:           viper.GetInt("SMTP_PORT"),
			User:           viper.GetString("SMTP_USER"),
			Password:       viper.GetString("SMTP_PASS"),
			From:           viper.GetString("EMAIL_FROM"),
			OrderTo:        viper.GetString("ORDER_EMAIL_TO"),
			CopyToCustomer: viper.GetBool("ORDER_COPY_TO_CUSTOMER"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Admin: AdminConfig{
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
		Presence: PresenceConfig{
			OnlineWindowMinutes: viper.GetInt("ONLINE_WINDOW_MINUTES"),
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: viper.GetInt("AUTH_RATE_PER_MINUTE"),
			AuthBurst:     viper.GetInt("AUTH_RATE_BURST"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.ExpiryHours < 1 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be positive, got %d", c.JWT.ExpiryHours)
	}
	if c.Email.Enabled() && c.Email.OrderTo == "" {
		return errors.New("ORDER_EMAIL_TO is required when SMTP_HOST is set")
	}
	if c.Presence.OnlineWindowMinutes < 1 {
		c.Presence.OnlineWindowMinutes = 5
	}
	return nil
}
