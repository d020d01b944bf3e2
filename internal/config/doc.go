// Package config loads the service configuration from defaults, an optional
// YAML file, DIRECTIONS_-prefixed environment variables and command line
// flags, in increasing order of precedence, and validates the result before
// any component sees it.
package config
