package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/assetry"
	assetryhttp "github.com/sagarc03/assetry/http"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for assetry.
type Config struct {
	Env           string                    `mapstructure:"env" yaml:"env,omitempty" validate:"omitempty,oneof=dev development prod production"`
	Server        ServerConfig              `mapstructure:"server" yaml:"server"`
	Log           LogConfig                 `mapstructure:"log" yaml:"log"`
	AccessLog     bool                      `mapstructure:"access_log" yaml:"access_log,omitempty"`
	CORS          assetryhttp.CORSConfig    `mapstructure:"cors" yaml:"cors,omitempty"`
	Hosts         []assetry.HostConfig      `mapstructure:"hosts" yaml:"hosts" validate:"omitempty,unique=Hostname,dive"`
	FileTypes     []assetry.FileType        `mapstructure:"file_types" yaml:"file_types,omitempty" validate:"unique=Extension,dive"`
	CachePolicies []assetryhttp.CachePolicy `mapstructure:"cache_policies" yaml:"cache_policies,omitempty" validate:"dive"`
}

// ErrNoHosts is returned by RequireHosts when no host is configured.
var ErrNoHosts = errors.New("no hosts configured")

// RequireHosts fails unless at least one host is configured. Commands that
// serve or resolve requests need the host table; compress with explicit
// roots does not.
func (c *Config) RequireHosts() error {
	if len(c.Hosts) == 0 {
		return fmt.Errorf("%w: add a hosts entry to the config file", ErrNoHosts)
	}
	return nil
}

// Production reports whether env names a production deployment.
func (c *Config) Production() bool {
	return c.Env == "prod" || c.Env == "production"
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int           `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout,omitempty" validate:"min=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout,omitempty" validate:"min=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout,omitempty" validate:"min=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout,omitempty" validate:"min=0"`
}

// LogConfig holds logging configuration. An empty level picks debug outside
// production and info inside it.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`
}

// SlogLevel returns the configured level. An empty or unrecognized level is
// debug outside production and info inside it.
func (l LogConfig) SlogLevel(production bool) slog.Level {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if production {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":       "server.port",
	"log-level":  "log.level",
	"access-log": "access_log",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("server.port", 8888)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("log.level", "")
	v.SetDefault("access_log", false)

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_methods", []string{"GET", "HEAD"})
	v.SetDefault("cors.max_age", 300)
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
//
// When the loaded configuration names no file types or no cache policies the
// built-in tables are used. An explicit empty cache_policies list disables
// path cache policies.
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFiles[0], err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("merge config %s: %w", cf, err)
			}
		}
	} else {
		v.SetConfigName("assetry")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/assetry")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("ASSETRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is honored for platforms that inject it.
	_ = v.BindEnv("server.port", "ASSETRY_SERVER_PORT", "PORT")

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.FileTypes) == 0 {
		cfg.FileTypes = assetry.DefaultFileTypes()
	}
	if !v.IsSet("cache_policies") {
		cfg.CachePolicies = assetryhttp.DefaultCachePolicies()
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
