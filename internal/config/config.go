package config

import "strings"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Store     StoreConfig     `mapstructure:"store"      validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                int    `mapstructure:"port"                  validate:"required,gt=0,lt=65536"`
	LogLevel            string `mapstructure:"log_level"             validate:"required,oneof=debug info warn error"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"  validate:"gte=0"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" validate:"gte=0"`
	IdleTimeoutSeconds  int    `mapstructure:"idle_timeout_seconds"  validate:"gte=0"`
}

// StoreConfig contains the record store settings.
type StoreConfig struct {
	// ID policies are "client" (caller supplies IDs) or "sequential"
	// (omitted IDs become max(id)+1).
	PatientIDPolicy string `mapstructure:"patient_id_policy" validate:"required,oneof=client sequential"`
	BookIDPolicy    string `mapstructure:"book_id_policy"    validate:"required,oneof=client sequential"`
	ItemIDPolicy    string `mapstructure:"item_id_policy"    validate:"required,oneof=client sequential"`
	// SeedFile optionally points at a YAML or JSON document of initial records.
	SeedFile string `mapstructure:"seed_file"`
}

// normalize folds the ID policies to the lower-case form the store parser
// accepts, so validation and store.ParseIDPolicy agree.
func (c *StoreConfig) normalize() {
	for _, p := range []*string{&c.PatientIDPolicy, &c.BookIDPolicy, &c.ItemIDPolicy} {
		*p = strings.ToLower(strings.TrimSpace(*p))
	}
}

// RateLimitConfig configures the per-process request rate limiter.
// A zero RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int     `mapstructure:"burst"               validate:"gte=0"`
}

// Enabled reports whether rate limiting is on.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerSecond > 0
}
