package utils

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the process-wide set of tunables for the CLI and pipeline
// packages, loaded once from the environment (optionally via a local
// .env file) instead of being read ad hoc throughout the codebase.
type Config struct {
	// SampleRateTarget is loaded from SAMPLE_RATE_TARGET (default 16000).
	// The resample and pipeline packages do not read it: they always work
	// at a fixed 16 kHz.
	SampleRateTarget int

	// ResampleQuality is the quality parameter passed to beep.Resample
	// (higher costs more CPU per excerpt for a more accurate sinc).
	ResampleQuality int

	LogLevel string
}

// yamlOverrides mirrors Config's fields as loaded from an optional
// shazoom.yaml in the working directory, consulted after .env and before
// process-level defaults (lowest-priority source wins last, so env beats
// YAML, and YAML beats the hardcoded default).
type yamlOverrides struct {
	SampleRateTarget *int    `yaml:"sample_rate_target"`
	ResampleQuality  *int    `yaml:"resample_quality"`
	LogLevel         *string `yaml:"log_level"`
}

var (
	configOnce sync.Once
	config     Config
)

// LoadConfig loads .env and shazoom.yaml once (the absence of either is
// not an error) and returns the resulting Config, applying documented
// defaults for anything left unset.
func LoadConfig() Config {
	configOnce.Do(func() {
		_ = godotenv.Load()

		var y yamlOverrides
		if data, err := os.ReadFile("shazoom.yaml"); err == nil {
			_ = yaml.Unmarshal(data, &y)
		}

		config = Config{
			SampleRateTarget: getEnvInt("SAMPLE_RATE_TARGET", intOr(y.SampleRateTarget, 16000)),
			ResampleQuality:  getEnvInt("RESAMPLE_QUALITY", intOr(y.ResampleQuality, 4)),
			LogLevel:         getEnv("LOG_LEVEL", stringOr(y.LogLevel, "info")),
		}
	})
	return config
}

func intOr(p *int, fallback int) int {
	if p != nil {
		return *p
	}
	return fallback
}

func stringOr(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
