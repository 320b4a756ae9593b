package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ErrMissingAPIKey is returned by Validate when no provider credential is configured.
var ErrMissingAPIKey = errors.New("AUTUMN_SECRET_KEY or AUTUMN_SECRET_KEY_RESOURCE must be set")

// PackSlot holds the environment-provided identifiers of one top-up tier.
type PackSlot struct {
	PriceID   string `envconfig:"PRICE_ID"`
	ProductID string `envconfig:"PRODUCT_ID"`
	Credits   int    `envconfig:"CREDITS"`
	Label     string `envconfig:"LABEL"`
}

// NamedSlot pairs a pack slot with its logical key.
type NamedSlot struct {
	Key  string
	Slot PackSlot
}

type Config struct {
	// Server
	Port         string `envconfig:"PORT" default:"8080"`
	Environment  string `envconfig:"ENV" default:"development"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"debug"`
	StaticDir    string `envconfig:"STATIC_DIR" default:"./public"`
	ClientOrigin string `envconfig:"CLIENT_ORIGIN" default:"*"`
	PublicOrigin string `envconfig:"PUBLIC_ORIGIN"`

	// Billing provider
	AutumnAPIBase           string        `envconfig:"AUTUMN_API_BASE" default:"https://api.useautumn.com/v1"`
	AutumnSecretKey         string        `envconfig:"AUTUMN_SECRET_KEY"`
	AutumnSecretKeyResource string        `envconfig:"AUTUMN_SECRET_KEY_RESOURCE"`
	AutumnFeatureID         string        `envconfig:"AUTUMN_FEATURE_ID" default:"messages"`
	AutumnPlanID            string        `envconfig:"AUTUMN_PLAN_ID" default:"pro"`
	AutumnHTTPTimeout       time.Duration `envconfig:"AUTUMN_HTTP_TIMEOUT" default:"0s"`

	// Demo identity; there is no authentication in front of the API.
	DemoCustomerID string `envconfig:"DEMO_CUSTOMER_ID" default:"demo-user-123"`

	// Top-up packs
	TopupSmall  PackSlot `envconfig:"TOPUP_SMALL"`
	TopupMedium PackSlot `envconfig:"TOPUP_MEDIUM"`
	TopupLarge  PackSlot `envconfig:"TOPUP_LARGE"`

	// GCP (optional)
	GCPProjectID       string `envconfig:"GCP_PROJECT_ID"`
	GCPProjectIDLocal  string `envconfig:"GCP_PROJECT_ID_LOCAL"`
	PubSubEmulatorHost string `envconfig:"PUBSUB_EMULATOR_HOST"`
	UsageEventsTopic   string `envconfig:"USAGE_EVENTS_TOPIC"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks invariants envconfig tags cannot express.
func (c *Config) Validate() error {
	if c.AutumnSecretKey == "" && c.AutumnSecretKeyResource == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// TopupSlots returns the configured pack slots in display order.
func (c *Config) TopupSlots() []NamedSlot {
	return []NamedSlot{
		{Key: "small", Slot: c.TopupSmall},
		{Key: "medium", Slot: c.TopupMedium},
		{Key: "large", Slot: c.TopupLarge},
	}
}

// GetGCPProjectID returns the project used for Pub/Sub and Secret Manager.
// The local project wins while the Pub/Sub emulator is in use.
func (c *Config) GetGCPProjectID() string {
	if c.PubSubEmulatorHost != "" && c.GCPProjectIDLocal != "" {
		return c.GCPProjectIDLocal
	}
	return c.GCPProjectID
}
