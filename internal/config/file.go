package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default defaults-file name.
const DefaultConfigFile = ".webscanner"

// ErrConfigNotFound is returned when the configuration file does not
// exist. Callers decide whether that is fatal based on whether the
// path was explicitly specified by the user.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .webscanner defaults file.
// Every field is optional; CLI flags override file values.
type File struct {
	// Ports overrides the default scanner port list.
	Ports string `yaml:"ports,omitempty"`

	// Rate overrides the default masscan packet rate.
	Rate string `yaml:"rate,omitempty"`

	// WorkDir overrides the workspace directory.
	WorkDir string `yaml:"workdir,omitempty"`

	// Output overrides the report file path.
	Output string `yaml:"output,omitempty"`

	// GeoIP is the GeoLite2 mmdb path for country enrichment.
	GeoIP string `yaml:"geoip,omitempty"`
}

// LoadConfigFile loads defaults from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the defaults file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .webscanner in the current directory
// 3. Look for .webscanner in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply copies the file's non-empty values onto cfg, honoring the
// changed set: a key present in changed (a flag the user set
// explicitly) is never overridden by the file.
func (cf *File) Apply(cfg *Config, changed map[string]bool) {
	if cf.Ports != "" && !changed["ports"] {
		cfg.Ports = cf.Ports
	}
	if cf.Rate != "" && !changed["rate"] {
		cfg.Rate = cf.Rate
	}
	if cf.WorkDir != "" && !changed["workdir"] {
		cfg.WorkDir = cf.WorkDir
	}
	if cf.Output != "" && !changed["output"] {
		cfg.ReportFile = cf.Output
	}
	if cf.GeoIP != "" && !changed["geoip"] {
		cfg.GeoIPPath = cf.GeoIP
	}
}
