// Package config handles loading and validation of instab configuration.
//
// Configuration is read from ~/.config/instab/config.toml with environment
// variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - INSTAB_CACHE_DIR env var: cache directory
//   - INSTAB_DOMAIN env var: home URL domain
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - cache_dir: directory of per-instance records (default: ~/.instab/cache)
//   - history_file: recently focused instances (default: ~/.instab/history.json)
//   - domain: home URL is https://{prefix}.{domain} (default: service-now.com)
//   - default_color: color of new instances (default: #ffffff)
//   - confirm_delete: ask before deleting an instance (default: true)
//   - theme: "default" or "none"
//
// # Path Validation
//
// Paths must be absolute or start with ~ (no relative paths like "." or "..")
// to avoid confusion about the working directory.
package config
