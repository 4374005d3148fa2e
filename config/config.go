package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	ServiceName string
	ServiceHost string

	MongoURI string
	MongoDB  string

	JWTSecret string

	FirebaseCredentialsFile string
	EventStoreURI           string
	ConsulAddr              string

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	PendingReminderAfter time.Duration
}

// LoadConfig reads configuration from the environment. Every key has a
// development default so the service starts with nothing but a local
// MongoDB.
func LoadConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("SERVICE_NAME", "rescue-service")
	v.SetDefault("SERVICE_HOST", "localhost")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "rescue")
	v.SetDefault("JWT_SECRET", "dev-secret-do-not-use-in-production")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("EVENTSTORE_URI", "")
	v.SetDefault("CONSUL_ADDR", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)
	v.SetDefault("PENDING_REMINDER_AFTER", "5m")

	return &Config{
		Port:                    v.GetString("PORT"),
		ServiceName:             v.GetString("SERVICE_NAME"),
		ServiceHost:             v.GetString("SERVICE_HOST"),
		MongoURI:                v.GetString("MONGO_URI"),
		MongoDB:                 v.GetString("MONGO_DB"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		FirebaseCredentialsFile: v.GetString("FIREBASE_CREDENTIALS_FILE"),
		EventStoreURI:           v.GetString("EVENTSTORE_URI"),
		ConsulAddr:              v.GetString("CONSUL_ADDR"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		LogFile:                 v.GetString("LOG_FILE"),
		LogMaxSizeMB:            v.GetInt("LOG_MAX_SIZE_MB"),
		LogMaxBackups:           v.GetInt("LOG_MAX_BACKUPS"),
		LogMaxAgeDays:           v.GetInt("LOG_MAX_AGE_DAYS"),
		PendingReminderAfter:    v.GetDuration("PENDING_REMINDER_AFTER"),
	}
}
