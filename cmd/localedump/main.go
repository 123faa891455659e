// Command localedump is the CLI entrypoint for the 7 Days to Die locale dump.
//
// It loads .env and LOCALEDUMP_* overrides, parses flags, validates the
// language settings, and either lists the supported languages or runs the
// dump pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sdtd-tools/localedump/internal/check"
	"github.com/sdtd-tools/localedump/internal/config"
	"github.com/sdtd-tools/localedump/internal/display"
	"github.com/sdtd-tools/localedump/internal/locale"
	"github.com/sdtd-tools/localedump/internal/logging"
	"github.com/sdtd-tools/localedump/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.1.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. Configuration errors are reported before any file
	// I/O and before the logger exists.
	cfg := config.DefaultConfig()
	if err := config.LoadEnv(&cfg, ".env"); err != nil {
		fmt.Fprintf(os.Stderr, "localedump: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "localedump: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "localedump: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "localedump: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner(os.Stdout)

	if cfg.Command == config.CommandLanguages {
		printLanguages()
		return 0
	}

	log.Info("=== localedump v%s (%s) ===", version, commit)
	if err := check.Preflight(&cfg, log); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling. Cancelling stops extraction before the dump
	// is written.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping before the dump is written")
		cancel()
	}()

	// Phase 4: Run pipeline (discover → extract → aggregate → write → report).
	rep := pipeline.NewReporter(os.Stdout, os.Stderr, log, !cfg.NoProgress)
	if _, err := pipeline.Run(ctx, &cfg, log, rep); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}

func printLanguages() {
	var rows [][]string
	for _, l := range locale.Default().Languages() {
		rows = append(rows, []string{l.Name, l.Tag})
	}
	display.PrintTable(os.Stdout, []string{"Language", "Locale"}, rows)
}
