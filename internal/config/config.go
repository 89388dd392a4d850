package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	Log       LogConfig
	Backends  BackendsConfig
	Routing   RoutingConfig
	Consensus ConsensusConfig
	Limits    LimitsConfig
	Usage     UsageConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds identity token verification settings.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BackendConfig holds settings for a single extraction backend.
type BackendConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// BackendsConfig holds the primary and secondary extraction backends.
// Primary serves the single strategy; routed and ensemble use both.
type BackendsConfig struct {
	Primary   BackendConfig `mapstructure:"primary"`
	Secondary BackendConfig `mapstructure:"secondary"`
}

// RoutingConfig selects how the routed strategy picks a backend.
type RoutingConfig struct {
	Policy string `mapstructure:"policy"`
}

// ConsensusConfig tunes the consensus engine.
type ConsensusConfig struct {
	// AgreementBonus is added to the mean confidence when more than one
	// backend succeeds, capped at 1.0.
	AgreementBonus float64 `mapstructure:"agreement_bonus"`
}

// LimitsConfig holds document validation limits.
type LimitsConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxFileSizeBytes returns the size limit in bytes.
func (l *LimitsConfig) MaxFileSizeBytes() int64 {
	return l.MaxFileSizeMB * 1024 * 1024
}

// UsageConfig holds quota store settings.
type UsageConfig struct {
	Store       string `mapstructure:"store"` // memory | postgres
	PeriodDays  int    `mapstructure:"period_days"`
	DefaultPlan string `mapstructure:"default_plan"`
}

// TelemetryConfig bounds the in-memory sample ring.
type TelemetryConfig struct {
	MaxSamples int `mapstructure:"max_samples"`
}

// Load reads configuration from environment variables with the OPSLINK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("OPSLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "opslink")
	v.SetDefault("db.password", "opslink_secret")
	v.SetDefault("db.name", "opslink_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "opslink")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Backend defaults
	v.SetDefault("backends.primary.provider", "gpt4v")
	v.SetDefault("backends.primary.model", "gpt-4-vision-preview")
	v.SetDefault("backends.primary.timeout_secs", 120)
	v.SetDefault("backends.secondary.provider", "claude")
	v.SetDefault("backends.secondary.model", "claude-3-sonnet-20240229")
	v.SetDefault("backends.secondary.timeout_secs", 120)

	// Routing defaults
	v.SetDefault("routing.policy", "alternate")

	// Consensus defaults
	v.SetDefault("consensus.agreement_bonus", 0.1)

	// Limits defaults
	v.SetDefault("limits.max_file_size_mb", 10)

	// Usage defaults
	v.SetDefault("usage.store", "memory")
	v.SetDefault("usage.period_days", 30)
	v.SetDefault("usage.default_plan", "starter")

	// Telemetry defaults
	v.SetDefault("telemetry.max_samples", 1000)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
