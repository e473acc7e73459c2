// Package config provides configuration structures and utilities for
// webscanner. It defines scan defaults, the workspace path layout for
// intermediate files, validation of flag combinations, and loading of
// the optional .webscanner YAML defaults file.
package config
