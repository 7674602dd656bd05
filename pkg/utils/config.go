package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Booking  BookingConfig
	Payment  PaymentConfig
	Ticket   TicketConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	MaxConns       int32
	AutoMigrate    bool
	MigrationsPath string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type BookingConfig struct {
	SeatHoldTTL       time.Duration
	PendingPaymentTTL time.Duration
	SweepInterval     time.Duration
}

type PaymentConfig struct {
	Service string
}

type TicketConfig struct {
	VerifyBaseURL string
	Currency      string
}

// LoadConfig reads .env when present, then lets the environment override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "bus-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("MIGRATIONS_PATH", "")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC_BOOKINGS", "booking-events")
	v.SetDefault("SEAT_HOLD_TTL_MINUTES", 5)
	v.SetDefault("PENDING_PAYMENT_TTL_MINUTES", 30)
	v.SetDefault("BOOKING_SWEEP_INTERVAL_SECONDS", 60)
	v.SetDefault("PAYMENT_SERVICE_NAME", "PayChangu")
	v.SetDefault("TICKET_VERIFY_BASE_URL", "https://yourapp.com")
	v.SetDefault("TICKET_CURRENCY", "MWK")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			Port:           v.GetString("PORT"),
			Debug:          v.GetBool("DEBUG"),
			LogPath:        v.GetString("LOG_PATH"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			Name:           v.GetString("DB_NAME"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASS"),
			MaxConns:       v.GetInt32("DB_MAX_CONNS"),
			AutoMigrate:    v.GetBool("DB_AUTO_MIGRATE"),
			MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Enabled: v.GetBool("KAFKA_ENABLED"),
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC_BOOKINGS"),
		},
		Booking: BookingConfig{
			SeatHoldTTL:       time.Duration(v.GetInt("SEAT_HOLD_TTL_MINUTES")) * time.Minute,
			PendingPaymentTTL: time.Duration(v.GetInt("PENDING_PAYMENT_TTL_MINUTES")) * time.Minute,
			SweepInterval:     time.Duration(v.GetInt("BOOKING_SWEEP_INTERVAL_SECONDS")) * time.Second,
		},
		Payment: PaymentConfig{
			Service: v.GetString("PAYMENT_SERVICE_NAME"),
		},
		Ticket: TicketConfig{
			VerifyBaseURL: strings.TrimRight(v.GetString("TICKET_VERIFY_BASE_URL"), "/"),
			Currency:      v.GetString("TICKET_CURRENCY"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
