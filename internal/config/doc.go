// Package config provides configuration structures and utilities for sentinel.
// It defines the classifier settings, the session timings, scenario
// overrides and report preferences, and loads them from a YAML file,
// the environment and a local .env file.
package config
