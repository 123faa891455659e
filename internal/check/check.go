// Package check provides preflight validation run before the dump pipeline:
// the Mods directory must exist and the output file must be writable where
// requested.
package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sdtd-tools/localedump/internal/config"
)

// Sentinel errors returned by Preflight.
var (
	ErrModsDirMissing   = errors.New("mods directory not found")
	ErrModsDirNotDir    = errors.New("mods path is not a directory")
	ErrOutputDirMissing = errors.New("output directory not found")
	ErrOutputIsDir      = errors.New("output path is a directory")
)

// Logger is the minimal logging interface needed by Preflight.
type Logger interface {
	Debug(string, ...interface{})
}

// Preflight checks the filesystem prerequisites of a dump run. It does not
// create or modify anything.
func Preflight(cfg *config.Config, log Logger) error {
	fi, err := os.Stat(cfg.ModsDir)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrModsDirMissing, cfg.ModsDir)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", cfg.ModsDir, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrModsDirNotDir, cfg.ModsDir)
	}
	log.Debug("Mods directory: %s", cfg.ModsDir)

	for _, out := range []string{cfg.OutputFile, cfg.XLSXFile} {
		if out == "" {
			continue
		}
		if err := checkOutput(out); err != nil {
			return err
		}
		log.Debug("Output: %s", out)
	}
	return nil
}

// checkOutput requires the parent directory to exist and path itself to be
// absent or a regular file.
func checkOutput(path string) error {
	dir := filepath.Dir(path)
	di, err := os.Stat(dir)
	if err != nil || !di.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputDirMissing, dir)
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputIsDir, path)
	}
	return nil
}
