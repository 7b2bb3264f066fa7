package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/containerlens/containerlens/internal/adapters/out/cumulocity"
	"github.com/containerlens/containerlens/internal/adapters/out/docker"
	"github.com/containerlens/containerlens/internal/adapters/out/telemetry"
	"github.com/containerlens/containerlens/internal/domain"
	"github.com/containerlens/containerlens/internal/logging"
)

// Inventory sources.
const (
	SourceCumulocity = "cumulocity"
	SourceDocker     = "docker"
)

// Config holds the application configuration.
type Config struct {
	Server struct {
		Port            int    `mapstructure:"port"`
		ShutdownTimeout string `mapstructure:"shutdown_timeout"`
	} `mapstructure:"server"`

	Logging logging.Config `mapstructure:"logging"`

	Inventory struct {
		Source     string            `mapstructure:"source"`    // "cumulocity" or "docker"
		Predicate  string            `mapstructure:"predicate"` // "strict" or "legacy"
		PageSize   int               `mapstructure:"page_size"`
		Cumulocity cumulocity.Config `mapstructure:"cumulocity"`
		Docker     docker.Config     `mapstructure:"docker"`
	} `mapstructure:"inventory"`

	Telemetry telemetry.Config `mapstructure:"telemetry"`
}

// LoadConfig reads the configuration file, the .env file of the working
// directory and the environment. configPath may be empty.
func LoadConfig(configPath string) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	v := viper.New()
	if err := loadConfig(v, configPath); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the application cannot run with.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range: %w", c.Server.Port, domain.ErrInvalidConfig)
	}

	if _, err := domain.ParsePredicateMode(c.Inventory.Predicate); err != nil {
		return err
	}

	switch c.Inventory.Source {
	case SourceCumulocity:
		if c.Inventory.Cumulocity.Host == "" {
			return fmt.Errorf("inventory.cumulocity.host is required: %w", domain.ErrInvalidConfig)
		}
	case SourceDocker:
		if c.Inventory.Docker.DeviceID == "" {
			return fmt.Errorf("inventory.docker.device_id is required: %w", domain.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown inventory source %q: %w", c.Inventory.Source, domain.ErrInvalidConfig)
	}

	return nil
}

// Predicate returns the configured child predicate.
func (c Config) Predicate() domain.ServicePredicate {
	p, err := domain.ParsePredicateMode(c.Inventory.Predicate)
	if err != nil {
		return domain.StrictPredicate()
	}
	return p
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// loadConfig loads configuration from file and sets defaults.
func loadConfig(v *viper.Viper, configPath string) error {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.enabled", false)
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size", 100)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age", 28)
	v.SetDefault("logging.file.compress", true)
	v.SetDefault("inventory.source", SourceCumulocity)
	v.SetDefault("inventory.predicate", domain.PredicateStrict)
	v.SetDefault("inventory.page_size", domain.MaxPageSize)
	v.SetDefault("inventory.cumulocity.timeout", cumulocity.DefaultTimeout.String())
	v.SetDefault("inventory.cumulocity.insecure", false)
	v.SetDefault("inventory.cumulocity.rate_limit", 0)
	v.SetDefault("inventory.docker.host", "")
	v.SetDefault("inventory.docker.device_id", "")
	v.SetDefault("inventory.docker.device_name", "")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.auth_token", "")
	v.SetDefault("telemetry.traces", true)
	v.SetDefault("telemetry.metrics", true)
	v.SetDefault("telemetry.trace_sample_rate", 1.0)

	ConfigureViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("CONTAINERLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// the standard Cumulocity variables used by go-c8y and go-c8y-cli
	for key, env := range map[string]string{
		"inventory.cumulocity.host":     "C8Y_HOST",
		"inventory.cumulocity.tenant":   "C8Y_TENANT",
		"inventory.cumulocity.username": "C8Y_USER",
		"inventory.cumulocity.password": "C8Y_PASSWORD",
		"inventory.cumulocity.token":    "C8Y_TOKEN",
	} {
		prefixed := "CONTAINERLENS_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	return nil
}

// ConfigureViper sets up viper with standard config file search paths.
// Config file: containerlens.yaml
// Search paths (in order): current directory, ~/.config/containerlens, /etc/containerlens
func ConfigureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.SetConfigName("containerlens")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/containerlens")
	v.AddConfigPath("/etc/containerlens")
}
