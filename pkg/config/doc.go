// Package config loads matrix configuration with koanf.
//
// Sources, later ones winning:
//
//  1. embedded/defaults.toml
//  2. $XDG_CONFIG_HOME/matrix/config.toml, or the file given with --config
//  3. MATRIX_* environment variables (MATRIX_CLONE_TIMEOUT=30s)
//  4. explicit overrides, used for command-line flags
//
// The resolved Config is passed down explicitly; no component reads global
// configuration or looks up the home directory on its own.
package config
