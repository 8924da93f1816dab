package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Config represents the console configuration
type Config struct {
	Club      ClubConfig       `yaml:"club"`
	Session   SessionConfig    `yaml:"session"`
	Log       LogConfig        `yaml:"log"`
	Seed      SeedConfig       `yaml:"seed"`
	Scheduler SchedulerConfig  `yaml:"scheduler"`
	Operators []OperatorConfig `yaml:"operators"`
}

// ClubConfig names the club and the timezone its dates are kept in
type ClubConfig struct {
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// SessionConfig contains login gate settings
type SessionConfig struct {
	Secret        string `yaml:"secret"`
	ExpiryMinutes int    `yaml:"expiry_minutes"`
	BcryptCost    int    `yaml:"bcrypt_cost"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SeedConfig controls loading of the sample catalogue at startup
type SeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"` // empty uses the embedded sample data
}

// SchedulerConfig holds cron specs (with seconds) for the watch command
type SchedulerConfig struct {
	OverdueReport string `yaml:"overdue_report"`
	RevenueReport string `yaml:"revenue_report"`
}

// OperatorConfig is a pre-provisioned console account
type OperatorConfig struct {
	Username     string `yaml:"username"`
	FullName     string `yaml:"full_name"`
	PasswordHash string `yaml:"password_hash"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and defaults, then validates
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("CLUB_NAME"); val != "" {
		c.Club.Name = val
	}
	if val := os.Getenv("CLUB_TIMEZONE"); val != "" {
		c.Club.Timezone = val
	}

	if val := os.Getenv("SESSION_SECRET"); val != "" {
		c.Session.Secret = val
	}
	if val := os.Getenv("SESSION_EXPIRY_MINUTES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Session.ExpiryMinutes = n
		}
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if val := os.Getenv("SEED_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Seed.Enabled = b
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Club.Timezone == "" {
		c.Club.Timezone = "UTC"
	}
	if c.Session.ExpiryMinutes == 0 {
		c.Session.ExpiryMinutes = 480 // one working day
	}
	if c.Session.BcryptCost == 0 {
		c.Session.BcryptCost = bcrypt.DefaultCost
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Club.Name == "" {
		return fmt.Errorf("club name is required")
	}
	if _, err := time.LoadLocation(c.Club.Timezone); err != nil {
		return fmt.Errorf("invalid club timezone %q: %w", c.Club.Timezone, err)
	}

	if c.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("session secret must be at least 32 characters")
	}
	if c.Session.ExpiryMinutes < 0 {
		return fmt.Errorf("invalid session expiry: %d", c.Session.ExpiryMinutes)
	}
	if c.Session.BcryptCost < bcrypt.MinCost || c.Session.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	seen := make(map[string]bool, len(c.Operators))
	for i, op := range c.Operators {
		if op.Username == "" {
			return fmt.Errorf("operator %d: username is required", i)
		}
		if seen[op.Username] {
			return fmt.Errorf("operator %s is listed twice", op.Username)
		}
		seen[op.Username] = true
		if _, err := bcrypt.Cost([]byte(op.PasswordHash)); err != nil {
			return fmt.Errorf("operator %s: password_hash is not a bcrypt hash", op.Username)
		}
	}

	return nil
}

// Location returns the club timezone. Validate has already checked it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Club.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SessionTTL returns the session token lifetime
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.ExpiryMinutes) * time.Minute
}
