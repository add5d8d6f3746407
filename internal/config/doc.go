// Package config loads plot settings from YAML, provides named presets and
// watches a config file for changes.
package config
