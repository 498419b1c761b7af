// Package config loads the tool's settings from multiple sources (CLI flags,
// a YAML file, FRONTENV_-prefixed environment variables) with precedence:
// CLI flags > YAML config > Environment variables > Defaults. Layers are
// merged in that order and validated before use.
//
// Note the distinction: this package configures frontenv itself. The frontend
// configuration that frontenv injects into the served application is a
// separate surface, controlled solely by the whitelist of variable name
// prefixes held here.
package config
