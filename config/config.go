package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Restaurant configuration.
	RestaurantName string   `mapstructure:"RESTAURANT_NAME"`
	PhoneNumber    string   `mapstructure:"PHONE_NUMBER"`
	TimeSlots      []string `mapstructure:"TIME_SLOTS"`
	MaxPerSlot     int      `mapstructure:"MAX_PER_SLOT"`
	MaxPartySize   int      `mapstructure:"MAX_PARTY_SIZE"`

	// Session store configuration.
	SessionStore      string `mapstructure:"SESSION_STORE"` // "memory" or "redis"
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`

	// Redis configuration (used when SESSION_STORE is "redis").
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("RESTAURANT_NAME", "Bobby's Table")
	viper.SetDefault("PHONE_NUMBER", "")
	viper.SetDefault("TIME_SLOTS", []string{"17:00", "18:00", "19:00", "20:00", "21:00"})
	viper.SetDefault("MAX_PER_SLOT", 5)
	viper.SetDefault("MAX_PARTY_SIZE", 20)
	viper.SetDefault("SESSION_STORE", "memory")
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
