// Package config loads savelink's settings.
//
// Layers are merged with koanf, later ones winning:
//
//  1. embedded/defaults.toml
//  2. the user config.toml (XDG config dir, or --config)
//  3. SAVELINK_* environment variables
//  4. overrides from command-line flags
//
// The merged tree is decoded into Config with mapstructure. Paths keep
// their ~ and are expanded after decoding.
package config
