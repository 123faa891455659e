package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envOverrides mirrors the Config fields that may come from the environment.
// It is prefilled from the current Config; env leaves unset variables alone.
type envOverrides struct {
	ModsDir   string `env:"MODS_DIR"`
	Output    string `env:"OUTPUT"`
	Language  string `env:"LANGUAGE"`
	ColorMode string `env:"COLOR"`
	LogFile   string `env:"LOG_FILE"`
	Jobs      int    `env:"JOBS"`
}

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LOCALEDUMP_"

// LoadEnv applies LOCALEDUMP_* environment variables to cfg. When dotenv is
// non-empty that file is loaded first; a missing file is not an error and
// variables already set in the process environment win over it.
func LoadEnv(cfg *Config, dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	o := envOverrides{
		ModsDir:   cfg.ModsDir,
		Output:    cfg.OutputFile,
		Language:  cfg.Language,
		ColorMode: string(cfg.ColorMode),
		LogFile:   cfg.LogFile,
		Jobs:      cfg.Jobs,
	}
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg.ModsDir = o.ModsDir
	cfg.OutputFile = o.Output
	cfg.Language = o.Language
	cfg.ColorMode = ColorMode(o.ColorMode)
	cfg.LogFile = o.LogFile
	cfg.Jobs = o.Jobs
	return nil
}
