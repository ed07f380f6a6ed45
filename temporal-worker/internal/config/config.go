package config

import (
	"errors"
	"fmt"

	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the worker settings
type Config struct {
	Env       string
	LogLevel  string
	HostPort  string
	Namespace string
	TaskQueue string
	// MaxConcurrentActivities caps IssueConfirmation executions per worker
	MaxConcurrentActivities int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TEMPORAL_HOST", "localhost:7233")
	v.SetDefault("TEMPORAL_NAMESPACE", "default")
	v.SetDefault("TEMPORAL_TASK_QUEUE", models.DefaultBookingTaskQueue)
	v.SetDefault("WORKER_MAX_CONCURRENT_ACTIVITIES", 50)
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{
		Env:                     v.GetString("ENV"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		HostPort:                v.GetString("TEMPORAL_HOST"),
		Namespace:               v.GetString("TEMPORAL_NAMESPACE"),
		TaskQueue:               v.GetString("TEMPORAL_TASK_QUEUE"),
		MaxConcurrentActivities: v.GetInt("WORKER_MAX_CONCURRENT_ACTIVITIES"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.HostPort == "" {
		errs = append(errs, errors.New("TEMPORAL_HOST is required"))
	}
	if c.TaskQueue == "" {
		errs = append(errs, errors.New("TEMPORAL_TASK_QUEUE is required"))
	}
	if c.MaxConcurrentActivities <= 0 {
		errs = append(errs, errors.New("WORKER_MAX_CONCURRENT_ACTIVITIES must be positive"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
