package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mozzadell/cc-optimizer/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultEndpoint is the hosted optimization service.
const DefaultEndpoint = "https://mozzadell.pythonanywhere.com/api/optimize-cards"

// EnvPrefix prefixes every environment override, e.g. CCOPT_API_URL.
const EnvPrefix = "CCOPT"

// LogConfig controls logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// BreakerConfig controls the circuit breaker in front of the service.
type BreakerConfig struct {
	MaxFailures uint32 `mapstructure:"max_failures" yaml:"max_failures"`
	OpenSeconds int    `mapstructure:"open_seconds" yaml:"open_seconds"`
}

// APIConfig describes the optimization service.
type APIConfig struct {
	URL            string        `mapstructure:"url" yaml:"url"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Breaker        BreakerConfig `mapstructure:"breaker" yaml:"breaker"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Format       string `mapstructure:"format" yaml:"format"`
	TopN         int    `mapstructure:"top_n" yaml:"top_n"`
	CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
	Color        bool   `mapstructure:"color" yaml:"color"`
}

// Config is the complete application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	API    APIConfig    `mapstructure:"api" yaml:"api"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// InitializeConfig resolves configuration in this order, later wins:
// defaults, config file, CCOPT_* environment variables. configFile may be
// empty, in which case config.yaml is searched in $HOME/.ccopt, .ccopt and
// the working directory.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.ccopt")
		v.AddConfigPath(".ccopt")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// LOG_LEVEL is honored as a shorthand for CCOPT_LOG_LEVEL
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration with only defaults applied.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("api.url", DefaultEndpoint)
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("api.breaker.max_failures", 3)
	v.SetDefault("api.breaker.open_seconds", 30)

	v.SetDefault("output.format", "text")
	v.SetDefault("output.top_n", 10)
	v.SetDefault("output.csv_delimiter", ",")
	v.SetDefault("output.color", true)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	u, err := url.Parse(config.API.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api.url must be an absolute http(s) URL, got: %q", config.API.URL)
	}

	if config.API.TimeoutSeconds < 0 || config.API.TimeoutSeconds > 600 {
		return fmt.Errorf("api.timeout_seconds must be between 0 and 600, got: %d", config.API.TimeoutSeconds)
	}

	if config.API.Breaker.MaxFailures < 1 {
		return fmt.Errorf("api.breaker.max_failures must be at least 1, got: %d", config.API.Breaker.MaxFailures)
	}

	if config.API.Breaker.OpenSeconds < 1 {
		return fmt.Errorf("api.breaker.open_seconds must be at least 1, got: %d", config.API.Breaker.OpenSeconds)
	}

	if err := validation.IsValidOutputFormat(config.Output.Format); err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}

	if config.Output.TopN < 1 {
		return fmt.Errorf("output.top_n must be at least 1, got: %d", config.Output.TopN)
	}

	if err := validation.IsValidCSVDelimiter(config.Output.CSVDelimiter); err != nil {
		return err
	}

	return nil
}
