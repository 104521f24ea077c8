package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/naturkoll/vocabbuild/internal/model"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = "vocabbuild.yml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the vocabbuild.yml configuration file.
// Region-level settings are optional; zero values mean "use the default".
type File struct {
	// PlaceID overrides the region the run is scoped to.
	PlaceID int `yaml:"placeId,omitempty"`

	// Locale overrides the common-name locale.
	Locale string `yaml:"locale,omitempty"`

	// Region overrides the region slug used in artifact file names.
	Region string `yaml:"region,omitempty"`

	// OutputDir overrides where artifacts are written.
	OutputDir string `yaml:"outputDir,omitempty"`

	// MaxPages overrides the species-counts page cap per source taxon.
	MaxPages int `yaml:"maxPages,omitempty"`

	// Groups is the ordered list of vocabulary groups to build.
	Groups []model.SourceGroup `yaml:"groups"`
}

// LoadConfigFile loads group configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error based on whether the config file path was explicitly
// specified by the user.
//
// Groups without a topN get DefaultTopN, so the file only has to spell out
// per-group sizes that differ from the default.
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

	for i := range cf.Groups {
		if cf.Groups[i].TopN == 0 {
			cf.Groups[i].TopN = DefaultTopN
		}
	}

	return &cf, nil
}

// Apply copies the file's non-zero settings onto cfg. Groups always come
// from the file; scalar settings only override when set.
func (cf *File) Apply(cfg *Config) {
	if cf.PlaceID != 0 {
		cfg.PlaceID = cf.PlaceID
	}
	if cf.Locale != "" {
		cfg.Locale = cf.Locale
	}
	if cf.Region != "" {
		cfg.RegionSlug = cf.Region
	}
	if cf.OutputDir != "" {
		cfg.OutputDir = cf.OutputDir
	}
	if cf.MaxPages != 0 {
		cfg.MaxPages = cf.MaxPages
	}
	cfg.Groups = cf.Groups
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for vocabbuild.yml in the current directory
//  3. Look for vocabbuild.yml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check XDG config directory
	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}
