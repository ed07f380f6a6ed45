package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Booking engines
const (
	EngineLocal    = "local"
	EngineTemporal = "temporal"
)

// Config holds all configuration for the api server
type Config struct {
	Env      string
	LogLevel string

	Server   ServerConfig
	LLM      LLMConfig
	Booking  BookingConfig
	Temporal TemporalConfig
	CORS     CORSConfig
	Brand    BrandConfig
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	SessionIdleTTL  time.Duration
	// TrustProxyHeaders keys rate limits on X-Forwarded-For / X-Real-IP.
	// Only enable behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

// LLMConfig holds settings for the hosted model behind the proxy endpoints
type LLMConfig struct {
	APIKey            string
	Model             string
	RequestsPerMinute int
	Burst             int
	Timeout           time.Duration
}

// BookingConfig paces the timed sequences
type BookingConfig struct {
	Engine          string
	StepDelayBase   time.Duration
	StepDelayJitter time.Duration
	ApprovalDelay   time.Duration
}

// TemporalConfig is used when Booking.Engine is "temporal"
type TemporalConfig struct {
	HostPort     string
	Namespace    string
	TaskQueue    string
	PollInterval time.Duration
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// BrandConfig is the white-label theme served to clients. It is loaded once
// at start-up and passed to whoever needs it.
type BrandConfig struct {
	Name         string `json:"name"`
	ProductName  string `json:"productName"`
	PrimaryColor string `json:"primaryColor"`
	AccentColor  string `json:"accentColor"`
	FontFamily   string `json:"fontFamily"`
	LogoURL      string `json:"logoUrl,omitempty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	// streaming responses can take a while
	v.SetDefault("SERVER_WRITE_TIMEOUT", 2*time.Minute)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("SESSION_IDLE_TTL", 30*time.Minute)
	v.SetDefault("TRUST_PROXY_HEADERS", false)

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("LLM_REQUESTS_PER_MIN", 20)
	v.SetDefault("LLM_BURST", 5)
	v.SetDefault("LLM_TIMEOUT", 90*time.Second)

	v.SetDefault("BOOKING_ENGINE", EngineLocal)
	v.SetDefault("STEP_DELAY_BASE", 600*time.Millisecond)
	v.SetDefault("STEP_DELAY_JITTER", 400*time.Millisecond)
	v.SetDefault("APPROVAL_DELAY", 1500*time.Millisecond)

	v.SetDefault("TEMPORAL_HOST", "localhost:7233")
	v.SetDefault("TEMPORAL_NAMESPACE", "default")
	v.SetDefault("TEMPORAL_TASK_QUEUE", "trip-booking-queue")
	v.SetDefault("TEMPORAL_POLL_INTERVAL", 200*time.Millisecond)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Content-Type,Authorization")

	v.SetDefault("BRAND_NAME", "Meridian Consulting")
	v.SetDefault("BRAND_PRODUCT_NAME", "Meridian Trips")
	v.SetDefault("BRAND_PRIMARY_COLOR", "#0B3D91")
	v.SetDefault("BRAND_ACCENT_COLOR", "#F5A623")
	v.SetDefault("BRAND_FONT_FAMILY", "Inter, sans-serif")
	v.SetDefault("BRAND_LOGO_URL", "")
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	// a missing .env is fine, the environment may be set directly
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds the config from an already prepared viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{
		Env:      v.GetString("ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Server: ServerConfig{
			Port:              v.GetString("APP_PORT"),
			ReadTimeout:       v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:      v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:       v.GetDuration("SERVER_IDLE_TIMEOUT"),
			ShutdownTimeout:   v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			SessionIdleTTL:    v.GetDuration("SESSION_IDLE_TTL"),
			TrustProxyHeaders: v.GetBool("TRUST_PROXY_HEADERS"),
		},
		LLM: LLMConfig{
			APIKey:            v.GetString("GEMINI_API_KEY"),
			Model:             v.GetString("GEMINI_MODEL"),
			RequestsPerMinute: v.GetInt("LLM_REQUESTS_PER_MIN"),
			Burst:             v.GetInt("LLM_BURST"),
			Timeout:           v.GetDuration("LLM_TIMEOUT"),
		},
		Booking: BookingConfig{
			Engine:          strings.ToLower(v.GetString("BOOKING_ENGINE")),
			StepDelayBase:   v.GetDuration("STEP_DELAY_BASE"),
			StepDelayJitter: v.GetDuration("STEP_DELAY_JITTER"),
			ApprovalDelay:   v.GetDuration("APPROVAL_DELAY"),
		},
		Temporal: TemporalConfig{
			HostPort:     v.GetString("TEMPORAL_HOST"),
			Namespace:    v.GetString("TEMPORAL_NAMESPACE"),
			TaskQueue:    v.GetString("TEMPORAL_TASK_QUEUE"),
			PollInterval: v.GetDuration("TEMPORAL_POLL_INTERVAL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		Brand: BrandConfig{
			Name:         v.GetString("BRAND_NAME"),
			ProductName:  v.GetString("BRAND_PRODUCT_NAME"),
			PrimaryColor: v.GetString("BRAND_PRIMARY_COLOR"),
			AccentColor:  v.GetString("BRAND_ACCENT_COLOR"),
			FontFamily:   v.GetString("BRAND_FONT_FAMILY"),
			LogoURL:      v.GetString("BRAND_LOGO_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail at runtime. A missing
// GEMINI_API_KEY is allowed: the proxy endpoints report it per request.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("APP_PORT is required"))
	}
	switch c.Booking.Engine {
	case EngineLocal:
	case EngineTemporal:
		if c.Temporal.HostPort == "" || c.Temporal.TaskQueue == "" {
			errs = append(errs, errors.New("TEMPORAL_HOST and TEMPORAL_TASK_QUEUE are required for the temporal booking engine"))
		}
	default:
		errs = append(errs, fmt.Errorf("BOOKING_ENGINE must be %q or %q, got %q", EngineLocal, EngineTemporal, c.Booking.Engine))
	}
	if c.Booking.StepDelayBase < 0 || c.Booking.StepDelayJitter < 0 || c.Booking.ApprovalDelay < 0 {
		errs = append(errs, errors.New("step delays must not be negative"))
	}
	if c.LLM.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("LLM_REQUESTS_PER_MIN must be positive"))
	}
	if c.LLM.Burst <= 0 {
		errs = append(errs, errors.New("LLM_BURST must be positive"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HasLLM reports whether an API key for the hosted model is configured
func (c *Config) HasLLM() bool {
	return c.LLM.APIKey != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
