// Package config provides configuration loading and management for the
// Shrink-Wrap reconstruction engine. It handles loading configuration from
// YAML files and provides default values, mirroring this codebase's
// earlier pkg/config package unchanged in shape.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Reconstruction holds the Shrink-Wrap algorithm parameters. A
	// non-positive value in any field takes the package's documented
	// default at the point shrinkwrap.Params is built from this config.
	Reconstruction struct {
		// NCycles bounds the outer mask-update loop.
		NCycles int `yaml:"nCycles"`

		// TargetError is the masked-norm convergence threshold.
		TargetError float64 `yaml:"targetError"`

		// Beta is the HIO feedback coefficient.
		Beta float64 `yaml:"beta"`

		// RIntensityCutOffAutoCorrel thresholds the very first mask,
		// derived from the measured intensity's autocorrelation.
		RIntensityCutOffAutoCorrel float64 `yaml:"rIntensityCutOffAutoCorrel"`

		// RIntensityCutOff thresholds every subsequent mask.
		RIntensityCutOff float64 `yaml:"rIntensityCutOff"`

		// Sigma0 is the initial Gaussian blur scale.
		Sigma0 float64 `yaml:"sigma0"`

		// SigmaChange is the multiplicative per-cycle blur decay.
		SigmaChange float64 `yaml:"sigmaChange"`

		// NHioCycles bounds the inner HIO loop per outer cycle.
		NHioCycles int `yaml:"nHioCycles"`
	} `yaml:"reconstruction"`

	// Observer controls the progress/debug hooks wired into the
	// controller, replacing the original's DEBUG_SHRINKWRAPP_CPP flag.
	Observer struct {
		// Verbose enables the per-cycle progress narration observer.
		Verbose bool `yaml:"verbose"`

		// DumpIntermediateImages enables a PNG-writing observer that saves
		// the mask and current estimate after every outer cycle.
		DumpIntermediateImages bool `yaml:"dumpIntermediateImages"`

		// OutputDir is where the PNG-writing observer saves its files.
		OutputDir string `yaml:"outputDir"`
	} `yaml:"observer"`
}

// DefaultConfig returns a configuration with the canonical Shrink-Wrap
// defaults.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Reconstruction.NCycles = 20
	cfg.Reconstruction.TargetError = 1e-5
	cfg.Reconstruction.Beta = 0.9
	cfg.Reconstruction.RIntensityCutOffAutoCorrel = 0.04
	cfg.Reconstruction.RIntensityCutOff = 0.20
	cfg.Reconstruction.Sigma0 = 3.0
	cfg.Reconstruction.SigmaChange = 0.01
	cfg.Reconstruction.NHioCycles = 20

	cfg.Observer.Verbose = true
	cfg.Observer.DumpIntermediateImages = false
	cfg.Observer.OutputDir = "shrinkwrap_debug"

	return cfg
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
