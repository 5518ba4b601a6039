package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. KANBAN_DATABASE_URL for database.url.
const EnvPrefix = "KANBAN"

// LoadOptions customizes where Load looks for configuration.
type LoadOptions struct {
	// ConfigFile is an explicit config file path. When empty, Load looks for
	// config.yaml in the working directory and silently continues if absent.
	ConfigFile string

	// EnvFile is a dotenv file merged into the process environment before
	// reading variables. Existing variables are never overridden.
	// Defaults to ".env"; a missing file is not an error.
	EnvFile string
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions is Load with an explicit config file and dotenv location.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)
}

// bindEnvs registers keys without defaults so AutomaticEnv picks them up
// during Unmarshal.
func bindEnvs(v *viper.Viper) {
	for _, key := range []string{"database.url", "auth.jwt_secret"} {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key)
	}
}
