package app

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard"
)

// DefaultAnalyticsAPIURL is used when ANALYTICS_API_URL is not set at all.
const DefaultAnalyticsAPIURL = "http://localhost:8000"

// Config holds runtime configuration for the dashboard.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development" validate:"oneof=development staging production test"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080" validate:"required"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s" validate:"gt=0"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"60s" validate:"gt=0"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"45s" validate:"gt=0"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty" validate:"oneof=json text pretty"`

	// AnalyticsAPIURL set to the empty string means same origin. A path such
	// as "/backend" is joined to the page origin.
	AnalyticsAPIURL  string `envconfig:"ANALYTICS_API_URL" default:"http://localhost:8000" validate:"omitempty,api_base"`
	DashboardVariant string `envconfig:"DASHBOARD_VARIANT" default:"baseline" validate:"oneof=baseline extended"`
	DashboardLocale  string `envconfig:"DASHBOARD_LOCALE" default:"az" validate:"required"`

	// DashboardLoadTimeout bounds one batch. Zero leaves requests to the
	// transport defaults.
	DashboardLoadTimeout  time.Duration `envconfig:"DASHBOARD_LOAD_TIMEOUT" default:"0s" validate:"gte=0"`
	// DashboardStaleLoading is the age after which a stored loading flag is
	// treated as abandoned. Zero trusts the flag until the next batch.
	DashboardStaleLoading time.Duration `envconfig:"DASHBOARD_STALE_LOADING" default:"2m" validate:"gte=0"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379" validate:"required,hostname_port"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true" validate:"min=16"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h" validate:"gt=0"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true" validate:"min=16"`

	// GotenbergURL left empty disables the PDF export.
	GotenbergURL string `envconfig:"GOTENBERG_URL" default:"http://127.0.0.1:3000" validate:"omitempty,url"`
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("api_base", validAPIBase); err != nil {
		panic(err)
	}
	return v
}

// validAPIBase accepts an absolute http(s) URL or a path rooted at "/".
func validAPIBase(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if strings.HasPrefix(raw, "/") {
		return !strings.HasPrefix(raw, "//")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := configValidator.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// Variant resolves the configured load variant.
func (c *Config) Variant() dashboard.Variant {
	variant, err := dashboard.ParseVariant(c.DashboardVariant)
	if err != nil {
		return dashboard.VariantBaseline
	}
	return variant
}

// SameOriginAPI reports whether API requests target the page origin.
func (c *Config) SameOriginAPI() bool {
	return c.AnalyticsAPIURL == "" || strings.HasPrefix(c.AnalyticsAPIURL, "/")
}
