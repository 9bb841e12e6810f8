// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. PRIMERTAIL_TARGET_TM.
const Prefix = "PRIMERTAIL"

// Config holds the defaults for every command. Flags override these.
type Config struct {
	// TargetTm is the design target in °C when no primer is supplied.
	// Env: TARGET_TM (default: 55)
	TargetTm float64 `envconfig:"TARGET_TM" default:"55"`

	// FwdConc and RevConc are primer concentrations ("1000nM", "1uM", "1000").
	// A bare number is read as nM.
	FwdConc string `envconfig:"FWD_CONC" default:"1000nM"`
	RevConc string `envconfig:"REV_CONC" default:"1000nM"`

	// SaltConc is the monovalent salt concentration. A bare number is mM.
	SaltConc string `envconfig:"SALT_CONC" default:"50mM"`

	MinLength int    `envconfig:"MIN_LENGTH" default:"13"`
	Formula   string `envconfig:"FORMULA" default:"bresluc"`

	// Overlap and MaxLink control fragment tailing.
	Overlap int `envconfig:"OVERLAP" default:"35"`
	MaxLink int `envconfig:"MAX_LINK" default:"40"`

	// Threads bounds batch design; 0 uses all CPUs.
	Threads int `envconfig:"THREADS" default:"0"`

	// DataDir holds the primer library.
	// Default: ~/.primertail
	DataDir string `envconfig:"DATA_DIR"`

	HTTPAddr string `envconfig:"HTTP_ADDR" default:"127.0.0.1:8080"`

	// LogLevel is DEBUG, INFO, WARN or ERROR.
	LogLevel string `envconfig:"LOG_LEVEL" default:"WARN"`
	// LogFormat is text or json.
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// FromEnv reads the PRIMERTAIL_* variables over the defaults.
func FromEnv() (Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	return c, c.Validate()
}

// Load reads an optional .env file, then the environment. A missing file is
// not an error. Variables already set in the environment win over the file.
func Load(envPath string) (Config, error) {
	if envPath == "" {
		envPath = ".env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", envPath, err)
		}
	}
	return FromEnv()
}

// Validate rejects values no command could use.
func (c Config) Validate() error {
	switch {
	case c.MinLength < 1:
		return fmt.Errorf("config: MIN_LENGTH must be >= 1, got %d", c.MinLength)
	case c.Overlap < 0:
		return fmt.Errorf("config: OVERLAP must be >= 0, got %d", c.Overlap)
	case c.MaxLink < 0:
		return fmt.Errorf("config: MAX_LINK must be >= 0, got %d", c.MaxLink)
	case c.Threads < 0:
		return fmt.Errorf("config: THREADS must be >= 0, got %d", c.Threads)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// DBPath is the primer library file inside DataDir.
func (c Config) DBPath() string { return filepath.Join(c.DataDir, "primers.db") }

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".primertail"
	}
	return filepath.Join(home, ".primertail")
}
