package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. DIRECTIONS_SERVER_PORT.
const EnvPrefix = "DIRECTIONS"

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"port":      "server.port",
	"log-level": "server.log_level",
	"compress":  "server.compress",
}

// envKeys are bound explicitly so that keys without a default are still
// read from the environment by Unmarshal.
var envKeys = []string{
	"server.port",
	"server.log_level",
	"server.request_timeout",
	"server.compress",
	"routing.maximum_waypoints",
	"routing.maximum_distance",
	"routing.maximum_avoid_polygon_area",
	"routing.maximum_avoid_polygon_extent",
	"routing.attribution",
	"routing.engine_version",
	"engine.timeout",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.compress", true)

	v.SetDefault("routing.maximum_waypoints", 50)
	v.SetDefault("routing.maximum_distance", 6_000_000)
	v.SetDefault("routing.class_maximum_distance", map[string]float64{
		"cycling":    300_000,
		"walking":    100_000,
		"wheelchair": 100_000,
	})
	v.SetDefault("routing.maximum_avoid_polygon_area", 200)
	v.SetDefault("routing.maximum_avoid_polygon_extent", 20)
	v.SetDefault("routing.attribution", "© OpenStreetMap contributors")
	v.SetDefault("routing.engine_version", "straight-line")

	v.SetDefault("engine.timeout", "10s")
	v.SetDefault("engine.average_speeds", map[string]float64{
		"driving":     80,
		"heavy-goods": 60,
		"cycling":     18,
		"walking":     5,
		"wheelchair":  4,
	})
}

// Load reads configuration from the environment and an optional config.yaml
// in the working directory. Environment variables take precedence over file
// values.
func Load() (*Config, error) {
	return LoadFrom("", nil)
}

// LoadFrom reads configuration with an explicit config file path and command
// line flags. An empty path searches the working directory for config.yaml;
// flags, when set, take precedence over every other source.
func LoadFrom(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("error binding flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	validate.RegisterStructValidation(validateTimeouts, Config{})
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// validateTimeouts requires the request deadline to outlast the engine
// deadline.
func validateTimeouts(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	if cfg.Server.RequestTimeout <= cfg.Engine.Timeout {
		sl.ReportError(cfg.Server.RequestTimeout, "Server.RequestTimeout", "RequestTimeout",
			"gtcsfield", "Engine.Timeout")
	}
}
