// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Empty fields fall back to the values returned by Default.
package config
