// Package config loads and validates tangle's TOML configuration.
//
// Configuration is resolved from an explicit --config path, then
// ~/.config/tangle/config.toml, then ./tangle.toml. Missing files fall back
// to repository defaults so the demo works out of the box. All path fields
// are tilde-expanded and made absolute during load.
package config
