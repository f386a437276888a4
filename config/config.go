package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting. It is built once at startup and handed
// to the initializers; nothing else reads the environment.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	// Database settings. DBDriver selects mysql or sqlite; DBPath is the
	// sqlite file, the host/user fields feed the mysql DSN.
	DBDriver   string `mapstructure:"DB_DRIVER"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBPath     string `mapstructure:"DB_PATH"`

	// Redis settings. The list cache stays disabled unless RedisHost is set.
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Timezone is the reference zone every due-date comparison happens in.
	Timezone string `mapstructure:"TIMEZONE"`

	// ReconcileIntervalSeconds is the period of the background status sweep.
	// Zero disables the timer; listings still reconcile synchronously.
	ReconcileIntervalSeconds int `mapstructure:"RECONCILE_INTERVAL_SECONDS"`
}

// LoadConfig reads configuration from a .env file or the environment.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_PATH", "taskboard.db")
	viper.SetDefault("TIMEZONE", "UTC")
	viper.SetDefault("RECONCILE_INTERVAL_SECONDS", 60)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		// The config file is optional; fall back to the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}

// GetDBConnString returns the mysql DSN.
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// GetRedisConnString returns the redis address.
func (c *Config) GetRedisConnString() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// ReconcileInterval returns the sweep period as a duration.
func (c *Config) ReconcileInterval() time.Duration {
	return time.Duration(c.ReconcileIntervalSeconds) * time.Second
}

// LoadLocation resolves the reference timezone.
func (c *Config) LoadLocation() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
