// Package config defines the run configuration and how it is loaded.
//
// Conventions:
// - New(ctx) returns a Config populated with defaults.
// - Load layers a YAML file and TALENTROLL_* environment variables on top;
//   Read does the same without validating.
// - Errors are wrapped with ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Trials is the number of simulated checks per talent.
	Trials int `koanf:"trials"`

	// WorkerCount sets the number of simulation workers.
	WorkerCount int `koanf:"worker_count"`

	// Seed fixes the random streams. Zero draws a fresh seed per run.
	Seed uint64 `koanf:"seed"`

	// TalentMapping is the path of a talent mapping file; empty selects the
	// bundled DSA5 mapping.
	TalentMapping string `koanf:"talent_mapping"`

	// MissingSkill is "zero" or "skip".
	MissingSkill string `koanf:"missing_skill"`

	// Format is "text" or "json".
	Format string `koanf:"format"`

	// Language of the text output, "en" or "de".
	Language string `koanf:"language"`

	// MetricsTextfile, when set, receives the Prometheus metrics after a run.
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:     "info",
		Trials:       10_000,
		WorkerCount:  runtime.NumCPU(),
		MissingSkill: "zero",
		Format:       "text",
		Language:     "en",
	}
}

var (
	formats       = []string{"text", "json"}
	missingSkills = []string{"zero", "skip"}
	languages     = []string{"en", "de"}
)

// Validate normalizes and checks c. A worker count below one falls back to
// one worker per CPU.
func (c *Config) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.WorkerCount < 1 {
		c.WorkerCount = runtime.NumCPU()
	}

	var err error
	if c.Format, err = oneOf("format", c.Format, formats); err != nil {
		return err
	}
	if c.MissingSkill, err = oneOf("missing_skill", c.MissingSkill, missingSkills); err != nil {
		return err
	}
	if c.Language, err = oneOf("language", c.Language, languages); err != nil {
		return err
	}
	return nil
}

func oneOf(key, value string, allowed []string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s must be one of %s, got %q", ErrInvalidConfig, key, strings.Join(allowed, "|"), value)
}
