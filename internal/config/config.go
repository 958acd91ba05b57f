// Package config loads toolkit settings from the environment. A .env file in
// the working directory is honored when present, matching how the analysis
// scripts are invoked from the study directory.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"matguard/domain/core"
	"matguard/internal/errors"
)

// Config represents the complete toolkit configuration
type Config struct {
	// ScriptPath is the default MATLAB script for validate/strip when no
	// argument is given on the command line.
	ScriptPath string
	// FDRLevel is the default q for FDR correction.
	FDRLevel float64
	// ExportPath, when set, receives results as .xlsx or .csv.
	ExportPath string
}

const (
	envScript = "MATGUARD_SCRIPT"
	envFDR    = "MATGUARD_FDR_LEVEL"
	envExport = "MATGUARD_EXPORT"

	defaultFDRLevel = 0.05
)

// Load reads configuration from the environment, after sourcing an optional
// .env file
func Load() (*Config, error) {
	// Missing .env is normal; only explicit settings matter.
	_ = godotenv.Load()

	cfg := &Config{
		ScriptPath: os.Getenv(envScript),
		FDRLevel:   defaultFDRLevel,
		ExportPath: os.Getenv(envExport),
	}

	if raw := os.Getenv(envFDR); raw != "" {
		q, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s value %q", envFDR, raw)
		}
		cfg.FDRLevel = q
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects operator typos before they reach the correction math.
// The FDR routine itself follows the formula for any q; the config layer is
// where out-of-range levels fail loudly.
func (c *Config) Validate() error {
	if c.FDRLevel <= 0 || c.FDRLevel > 1 {
		return errors.WithCode(errors.CodeInvalidFDR, core.ErrInvalidFDRLevel)
	}
	return nil
}
