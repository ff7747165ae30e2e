// Package config loads, normalizes, and validates the tafel configuration
// file. Configuration is consumed once at startup; anything invalid aborts
// before per-item work begins.
package config
