package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"rentacar-backend/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	SendGrid    SendGridConfig    `yaml:"sendgrid"`
	JWT         JWTConfig         `yaml:"jwt"`
	Operators   []OperatorConfig  `yaml:"operators"`
	Log         LogConfig         `yaml:"log"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

// DatabaseConfig contains PostgreSQL connection settings for the rental ledger.
// When disabled the ledger is kept in memory.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SendGridConfig contains email settings. An empty API key logs notices instead of sending them.
type SendGridConfig struct {
	APIKey            string `yaml:"api_key"`
	FromEmail         string `yaml:"from_email"`
	FromName          string `yaml:"from_name"`
	FleetManagerEmail string `yaml:"fleet_manager_email"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// OperatorConfig is a back-office account. PasswordHash is a bcrypt hash.
type OperatorConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// CriterionConfig selects one maintenance criterion: mileage (km), months or rentals.
type CriterionConfig struct {
	Kind      string  `yaml:"kind"`
	Threshold float64 `yaml:"threshold"`
}

type MaintenanceConfig struct {
	Criteria []CriterionConfig `yaml:"criteria"`
}

// SchedulerConfig contains cron schedule settings (with seconds, UTC).
type SchedulerConfig struct {
	Enabled                  bool   `yaml:"enabled"`
	StartScheduledRentals    string `yaml:"start_scheduled_rentals"`
	SendMaintenanceReminders string `yaml:"send_maintenance_reminders"`
}

// Load reads .env from the working directory, then the YAML file.
func Load(configPath string) (*Config, error) {
	return LoadWithEnvFile(configPath, ".env")
}

// LoadWithEnvFile reads envPath (if it exists) into the process environment, parses the YAML
// file, applies environment overrides and validates the result.
func LoadWithEnvFile(configPath, envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Database
	if val := os.Getenv("DB_ENABLED"); val != "" {
		c.Database.Enabled = strings.EqualFold(val, "true") || val == "1"
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("FLEET_MANAGER_EMAIL"); val != "" {
		c.SendGrid.FleetManagerEmail = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeoutSeconds == 0 {
		c.Server.ShutdownTimeoutSeconds = 10
	}

	if c.Database.Enabled {
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	}

	if c.SendGrid.APIKey != "" && c.SendGrid.FromEmail == "" {
		return fmt.Errorf("sendgrid from_email is required when an API key is set")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}

	seen := make(map[string]bool)
	for _, op := range c.Operators {
		if op.Username == "" || op.PasswordHash == "" {
			return fmt.Errorf("operators need a username and a password_hash")
		}
		if seen[op.Username] {
			return fmt.Errorf("duplicate operator %q", op.Username)
		}
		seen[op.Username] = true
	}

	if _, err := c.Maintenance.Policy(); err != nil {
		return err
	}

	if c.Scheduler.StartScheduledRentals == "" {
		c.Scheduler.StartScheduledRentals = "0 5 0 * * *" // 00:05 UTC
	}
	if c.Scheduler.SendMaintenanceReminders == "" {
		c.Scheduler.SendMaintenanceReminders = "0 0 8 * * *" // 8 AM UTC
	}

	return nil
}

// Policy builds the maintenance policy from the configured criteria.
func (m MaintenanceConfig) Policy() (domain.MaintenancePolicy, error) {
	criteria := make([]domain.MaintenanceCriterion, 0, len(m.Criteria))
	for _, cc := range m.Criteria {
		c, err := domain.ParseCriterion(cc.Kind, cc.Threshold)
		if err != nil {
			return domain.MaintenancePolicy{}, fmt.Errorf("maintenance criteria: %w", err)
		}
		criteria = append(criteria, c)
	}
	return domain.NewMaintenancePolicy(criteria...), nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpiry) * time.Minute
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}
