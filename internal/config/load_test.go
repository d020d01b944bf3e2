package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults verifies the defaults applied when nothing is configured.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Server.Compress)

	assert.Equal(t, 50, cfg.Routing.MaximumWaypoints)
	assert.Equal(t, 6_000_000.0, cfg.Routing.MaximumDistance)
	assert.Equal(t, 300_000.0, cfg.Routing.ClassMaximumDistance["cycling"])
	assert.Equal(t, 200.0, cfg.Routing.MaximumAvoidPolygonArea)
	assert.Equal(t, 20.0, cfg.Routing.MaximumAvoidPolygonExtent)
	assert.NotEmpty(t, cfg.Routing.Attribution)

	assert.Equal(t, 10*time.Second, cfg.Engine.Timeout)
	assert.Equal(t, 80.0, cfg.Engine.AverageSpeeds["driving"])
	assert.Equal(t, 60.0, cfg.Engine.AverageSpeeds["heavy-goods"])
}

// TestLoadFromEnv verifies that environment variables override defaults.
func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DIRECTIONS_SERVER_PORT", "9090")
	t.Setenv("DIRECTIONS_SERVER_LOG_LEVEL", "debug")
	t.Setenv("DIRECTIONS_SERVER_REQUEST_TIMEOUT", "5s")
	t.Setenv("DIRECTIONS_ROUTING_MAXIMUM_WAYPOINTS", "25")
	t.Setenv("DIRECTIONS_ROUTING_MAXIMUM_DISTANCE", "100000")
	t.Setenv("DIRECTIONS_ENGINE_TIMEOUT", "2s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 25, cfg.Routing.MaximumWaypoints)
	assert.Equal(t, 100_000.0, cfg.Routing.MaximumDistance)
	assert.Equal(t, 2*time.Second, cfg.Engine.Timeout)
}

// TestLoadValidationErrors verifies that invalid values are rejected.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "invalid port number",
			envVars: map[string]string{"DIRECTIONS_SERVER_PORT": "999999"},
		},
		{
			name:    "invalid log level",
			envVars: map[string]string{"DIRECTIONS_SERVER_LOG_LEVEL": "invalid-level"},
		},
		{
			name:    "waypoint limit below two",
			envVars: map[string]string{"DIRECTIONS_ROUTING_MAXIMUM_WAYPOINTS": "1"},
		},
		{
			name:    "non positive distance",
			envVars: map[string]string{"DIRECTIONS_ROUTING_MAXIMUM_DISTANCE": "0"},
		},
		{
			name: "request timeout equal to engine timeout",
			envVars: map[string]string{
				"DIRECTIONS_SERVER_REQUEST_TIMEOUT": "10s",
				"DIRECTIONS_ENGINE_TIMEOUT":         "10s",
			},
		},
		{
			name: "request timeout below engine timeout",
			envVars: map[string]string{
				"DIRECTIONS_SERVER_REQUEST_TIMEOUT": "5s",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

// TestLoadFromFile verifies file values and their precedence below the environment.
func TestLoadFromFile(t *testing.T) {
	configYaml := `
server:
  port: 7070
  log_level: warn
routing:
  maximum_waypoints: 10
  class_maximum_distance:
    cycling: 50000
engine:
  average_speeds:
    driving: 100
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYaml), 0o600))

	t.Setenv("DIRECTIONS_SERVER_PORT", "6060")

	cfg, err := LoadFrom(path, nil)

	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port, "environment should take precedence over the file")
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, 10, cfg.Routing.MaximumWaypoints)
	assert.Equal(t, 50_000.0, cfg.Routing.ClassMaximumDistance["cycling"])
	assert.Equal(t, 100.0, cfg.Engine.AverageSpeeds["driving"])
}

// TestLoadMissingExplicitFile verifies that a named config file must exist.
func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

// TestLoadFromFlags verifies that changed flags take precedence over the environment.
func TestLoadFromFlags(t *testing.T) {
	t.Setenv("DIRECTIONS_SERVER_PORT", "6060")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 8080, "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--port=5050"}))

	cfg, err := LoadFrom("", flags)

	require.NoError(t, err)
	assert.Equal(t, 5050, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}
