package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	AdminAPIKey       string `mapstructure:"ADMIN_API_KEY"`

	// Storage backend for accounts, workers and bookings: "memory" or "mongo".
	Storage      string `mapstructure:"STORAGE"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Session, OTP and draft store backend: "memory" or "redis".
	SessionStore   string        `mapstructure:"SESSION_STORE"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB    int           `mapstructure:"REDIS_AUTH_DB"`
	RedisOTPDB     int           `mapstructure:"REDIS_OTP_DB"`
	RedisBookingDB int           `mapstructure:"REDIS_BOOKING_DB"`
	RedisQueueDB   int           `mapstructure:"REDIS_QUEUE_DB"`

	RemindersEnabled bool `mapstructure:"REMINDERS_ENABLED"`
	// OTPStrict compares codes against the dispatched one instead of format-checking only.
	OTPStrict        bool          `mapstructure:"OTP_STRICT"`
	DirectoryLatency time.Duration `mapstructure:"DIRECTORY_LATENCY"`
	GeolocationURL   string        `mapstructure:"GEOLOCATION_URL"`
	StripeKey        string        `mapstructure:"STRIPE_KEY"`
	Currency         string        `mapstructure:"CURRENCY"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers every key so AutomaticEnv can bind it during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("JWT_SECRET", "servicelink-dev-secret")
	v.SetDefault("ADMIN_API_KEY", "")
	v.SetDefault("STORAGE", "memory")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "servicelink")
	v.SetDefault("SESSION_STORE", "memory")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("REDIS_OTP_DB", 2)
	v.SetDefault("REDIS_BOOKING_DB", 3)
	v.SetDefault("REDIS_QUEUE_DB", 4)
	v.SetDefault("REMINDERS_ENABLED", false)
	v.SetDefault("OTP_STRICT", false)
	v.SetDefault("DIRECTORY_LATENCY", "0s")
	v.SetDefault("GEOLOCATION_URL", "https://ipapi.co/%s/json/")
	v.SetDefault("STRIPE_KEY", "")
	v.SetDefault("CURRENCY", "INR")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
