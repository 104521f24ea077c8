// Package config provides configuration structures and utilities for
// vocabbuild. It defines the main options for the API client (region, locale,
// pagination, politeness and retry settings), the group list loaded from the
// YAML configuration file, and artifact output preferences.
package config
