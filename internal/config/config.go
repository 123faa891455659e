// Package config holds runtime configuration: defaults, environment overlay,
// CLI flag parsing, and validation. Defaults match the 7d2dtools
// locale-dump command.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sdtd-tools/localedump/internal/locale"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Command names selected on the command line.
const (
	CommandDump      = "locale-dump"
	CommandLanguages = "languages"
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [LoadEnv] and then [ParseFlags], and finally normalized by
// [Config.Validate].
type Config struct {
	// Selected subcommand (CommandDump or CommandLanguages).
	Command string

	// Paths.
	ModsDir    string // Default: "Mods" (relative to cwd).
	OutputFile string // Default: "Localization-DUMP.txt".
	XLSXFile   string // Optional workbook export.

	// Dump settings.
	Language        string   // Default: "english".
	ExtraKeys       []string // Extra columns, lowercased during Validate.
	TargetLanguage  string   // Required with GoogleTranslate.
	IgnoreLanguage  string   // Column whose non-empty value skips a file.
	GoogleTranslate bool     // Emit GOOGLETRANSLATE formulas.
	Jobs            int      // Default: 1 (sequential).

	// Display and logging.
	Verbose    bool
	NoProgress bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
}

// DefaultConfig returns a Config with the locale-dump defaults.
func DefaultConfig() Config {
	return Config{
		Command:    CommandDump,
		ModsDir:    "Mods",
		OutputFile: "Localization-DUMP.txt",
		Language:   "english",
		Jobs:       1,
		ColorMode:  ColorAuto,
	}
}

// Validate normalizes language and key names and checks the dump settings
// against the language table. Checks run in this order:
// translate-without-target, source language, target language.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}
	if c.Command == CommandLanguages {
		return nil
	}

	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	c.TargetLanguage = strings.ToLower(strings.TrimSpace(c.TargetLanguage))
	c.IgnoreLanguage = strings.TrimSpace(c.IgnoreLanguage)
	c.ExtraKeys = NormalizeKeys(c.ExtraKeys)

	if c.GoogleTranslate && c.TargetLanguage == "" {
		return errors.New("Google Translate option requires a target language")
	}
	langs := locale.Default()
	if !langs.Has(c.Language) {
		return fmt.Errorf("Invalid language selected. Available languages are: %s",
			strings.Join(langs.Names(), ", "))
	}
	if c.TargetLanguage != "" && !langs.Has(c.TargetLanguage) {
		return fmt.Errorf("Invalid target language selected. Available languages are: %s",
			strings.Join(langs.Names(), ", "))
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1 (got %d)", c.Jobs)
	}
	if strings.TrimSpace(c.ModsDir) == "" {
		return errors.New("mods directory must not be empty")
	}
	if strings.TrimSpace(c.OutputFile) == "" {
		return errors.New("output file must not be empty")
	}
	return nil
}

// HeaderLabel is the value-column label of the dump header: the target
// language when one is set, the source language otherwise.
func (c *Config) HeaderLabel() string {
	if c.TargetLanguage != "" {
		return c.TargetLanguage
	}
	return c.Language
}

// NormalizeKeys lowercases extra-key names and splits comma-separated
// entries, keeping their order. Empty entries are dropped.
func NormalizeKeys(keys []string) []string {
	var out []string
	for _, k := range keys {
		for _, part := range strings.Split(k, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
