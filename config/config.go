package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort       string `mapstructure:"APP_PORT"`
	Env           string `mapstructure:"ENV"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS"`

	// Document store: "firestore", "mongo" or "memory".
	DocstoreDriver string `mapstructure:"DOCSTORE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`

	// Firebase project used for Firestore, Auth and Cloud Messaging.
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseAPIKey          string `mapstructure:"FIREBASE_API_KEY"`

	// Identity provider: "firebase" or "local".
	AuthProvider string `mapstructure:"AUTH_PROVIDER"`

	// Redis configuration. An empty address keeps sessions in memory and disables reminders.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	PushEnabled      bool `mapstructure:"PUSH_ENABLED"`
	RemindersEnabled bool `mapstructure:"REMINDERS_ENABLED"`

	// Legacy behavior: booking an unknown room number creates it already booked.
	HotelAutoProvisionRooms bool `mapstructure:"HOTEL_AUTO_PROVISION_ROOMS"`

	SavedTripsJoinTimeoutMS int `mapstructure:"SAVED_TRIPS_JOIN_TIMEOUT_MS"`
}

// LoadConfig reads config.yaml (if any), a local .env file (if any) and the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	v := viper.New()
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service must not run with.
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL_HOURS", 24*7)
	v.SetDefault("DOCSTORE_DRIVER", "memory")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "tripnest")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("FIREBASE_API_KEY", "")
	v.SetDefault("AUTH_PROVIDER", "local")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 3)
	v.SetDefault("PUSH_ENABLED", false)
	v.SetDefault("REMINDERS_ENABLED", false)
	v.SetDefault("HOTEL_AUTO_PROVISION_ROOMS", false)
	v.SetDefault("SAVED_TRIPS_JOIN_TIMEOUT_MS", 10000)
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TokenTTL is the lifetime of issued session tokens.
func (c *Config) TokenTTL() time.Duration {
	if c.TokenTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// SavedTripsJoinTimeout bounds each saved-trips catalog join.
func (c *Config) SavedTripsJoinTimeout() time.Duration {
	if c.SavedTripsJoinTimeoutMS <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.SavedTripsJoinTimeoutMS) * time.Millisecond
}
