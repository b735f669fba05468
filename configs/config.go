package configs

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Ops       OpsConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Log       LogConfig
	Market    MarketConfig
	Signup    SignupConfig
	Sweeper   SweeperConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds the public API listener configuration
type ServerConfig struct {
	Port            string        `env:"PORT"             envDefault:"5000"`
	Env             string        `env:"GO_ENV"           envDefault:"development"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// OpsConfig holds the health and metrics listener configuration
type OpsConfig struct {
	Port string `env:"OPS_PORT" envDefault:"9090"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL           string `env:"DATABASE_URL,required"`
	MaxConns      int32  `env:"DATABASE_MAX_CONNS"     envDefault:"10"`
	MinConns      int32  `env:"DATABASE_MIN_CONNS"     envDefault:"2"`
	MigrateOnBoot bool   `env:"DATABASE_MIGRATE_ON_BOOT" envDefault:"true"`
}

// AuthConfig holds token signing and password hashing settings
type AuthConfig struct {
	JWTSecret  string        `env:"JWT_KEY,required,notEmpty"`
	TokenTTL   time.Duration `env:"JWT_TTL"     envDefault:"1h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"12"`
}

// LogConfig holds logrus settings
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// MarketConfig holds the transfer market rules that may vary per deployment
type MarketConfig struct {
	Timezone        string   `env:"MARKET_TIMEZONE"         envDefault:"Europe/Madrid"`
	PolicyFile      string   `env:"MARKET_POLICY_FILE"`
	AdminTeam       string   `env:"MARKET_ADMIN_TEAM"       envDefault:"Admin"`
	UnassignedTeam  string   `env:"MARKET_UNASSIGNED_TEAM"  envDefault:"Equipo no asignado"`
	ProtectedTitles []string `env:"MARKET_PROTECTED_TITLES" envDefault:"Prueba2(NO ME FICHES),Prueba1" envSeparator:","`
	RosterLimit     int      `env:"MARKET_ROSTER_LIMIT"     envDefault:"18"`
}

// SignupConfig holds the values every new account starts with
type SignupConfig struct {
	Equipo      string `env:"SIGNUP_EQUIPO"      envDefault:"Equipo no asignado"`
	Division    string `env:"SIGNUP_DIVISION"    envDefault:"Cuarta"`
	Presupuesto int64  `env:"SIGNUP_PRESUPUESTO" envDefault:"6000"`
	Image       string `env:"SIGNUP_IMAGE"       envDefault:"https://imgur.com/2FS8g0d.png"`
}

// SweeperConfig holds the discard-expiry job settings
type SweeperConfig struct {
	Enabled    bool          `env:"SWEEPER_ENABLED"     envDefault:"true"`
	Schedule   string        `env:"SWEEPER_SCHEDULE"    envDefault:"*/10 * * * *"`
	Timeout    time.Duration `env:"SWEEPER_TIMEOUT"     envDefault:"1m"`
	DiscardTTL time.Duration `env:"SWEEPER_DISCARD_TTL" envDefault:"72h"`
}

// RateLimitConfig holds the per-IP limiter guarding signup and login
type RateLimitConfig struct {
	Enabled bool    `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RPS     float64 `env:"RATE_LIMIT_RPS"     envDefault:"1"`
	Burst   int     `env:"RATE_LIMIT_BURST"   envDefault:"5"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) validate() error {
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DATABASE_MIN_CONNS (%d) exceeds DATABASE_MAX_CONNS (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.Market.RosterLimit <= 0 {
		return fmt.Errorf("MARKET_ROSTER_LIMIT must be positive")
	}
	if c.Signup.Presupuesto < 0 {
		return fmt.Errorf("SIGNUP_PRESUPUESTO cannot be negative")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}
