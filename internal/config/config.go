package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Importer  ImporterConfig  `mapstructure:"importer"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"  validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"               validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"gt=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string        `mapstructure:"jwt_secret"             validate:"required,min=32"`
	Algorithm            string        `mapstructure:"algorithm"              validate:"required,oneof=HS256 HS384 HS512"`
	TokenLifetimeMinutes int           `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44640"` // Max 31 days
	ClockSkew            time.Duration `mapstructure:"clock_skew"             validate:"gte=0"`
	BcryptCost           int           `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
	// UserStore selects the credential source: users listed in this config
	// ("static") or the users table ("postgres").
	UserStore string       `mapstructure:"user_store" validate:"required,oneof=static postgres"`
	Users     []StaticUser `mapstructure:"users"      validate:"dive"`
}

// StaticUser is a credential record provisioned through configuration.
type StaticUser struct {
	Username     string `mapstructure:"username"      validate:"required"`
	FullName     string `mapstructure:"full_name"`
	Email        string `mapstructure:"email"         validate:"omitempty,email"`
	PasswordHash string `mapstructure:"password_hash" validate:"required"`
	Disabled     bool   `mapstructure:"disabled"`
}

// CacheConfig controls the response cache for read endpoints.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	ListTTL time.Duration `mapstructure:"list_ttl" validate:"gte=0"`
	ItemTTL time.Duration `mapstructure:"item_ttl" validate:"gte=0"`
}

// ImporterConfig configures the external task source used by reconciliation.
type ImporterConfig struct {
	SourceURL string        `mapstructure:"source_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout"    validate:"gt=0"`
}

// RateLimitConfig throttles the login endpoint per client IP.
type RateLimitConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	LoginPerSecond float64 `mapstructure:"login_per_second" validate:"gt=0"`
	LoginBurst     int     `mapstructure:"login_burst"      validate:"gt=0"`
}
