package pipeline

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sdtd-tools/localedump/internal/config"
	"github.com/sdtd-tools/localedump/internal/dump"
	"github.com/sdtd-tools/localedump/internal/extract"
	"github.com/sdtd-tools/localedump/internal/locale"
	"github.com/sdtd-tools/localedump/internal/logging"
)

// ErrNoFiles is returned when the Mods directory holds no Localization.txt.
var ErrNoFiles = errors.New("No Localization.txt files found in the Mods directory.")

// Run is the top-level dump entry point. It discovers files, extracts them,
// writes the aggregated dump and prints the summary. cfg must have passed
// Validate. Nothing is written when discovery fails, no file is found, or ctx
// is cancelled before extraction finishes.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, rep *Reporter) (RunStats, error) {
	var stats RunStats

	opts, err := ExtractOptions(cfg)
	if err != nil {
		return stats, err
	}

	files, err := Discover(cfg.ModsDir)
	if err != nil {
		return stats, err
	}
	if len(files) == 0 {
		return stats, ErrNoFiles
	}
	stats.Total = len(files)
	logBatchHeader(cfg, log, &stats)

	rep.Start(len(files))
	results, err := extractAll(ctx, files, opts, cfg.Jobs, rep)
	rep.Finish()
	if err != nil {
		return stats, err
	}
	for _, res := range results {
		stats.record(res)
	}
	logDuplicates(log, dump.FindDuplicates(results), &stats)

	header := dump.HeaderRow(cfg.ExtraKeys, cfg.HeaderLabel())
	rows := dump.Aggregate(results, header, locale.CollationTag)
	stats.Rows = len(rows) - 1

	outputs := []string{cfg.OutputFile}
	if err := dump.WriteText(cfg.OutputFile, rows, dump.Separator(cfg.GoogleTranslate)); err != nil {
		return stats, err
	}
	if cfg.XLSXFile != "" {
		xo := dump.XLSXOptions{Translate: cfg.GoogleTranslate, SourceTag: opts.SourceTag, TargetTag: opts.TargetTag}
		if err := dump.WriteXLSX(cfg.XLSXFile, rows, xo); err != nil {
			return stats, err
		}
		outputs = append(outputs, cfg.XLSXFile)
	}

	rep.Summary(&stats, outputs, cfg.IgnoreLanguage)
	return stats, nil
}

// ExtractOptions resolves the configured languages into extractor options.
// Formula tags are parsed as BCP 47 and emitted in canonical form.
func ExtractOptions(cfg *config.Config) (extract.Options, error) {
	langs := locale.Default()
	src, err := langs.Lookup(cfg.Language)
	if err != nil {
		return extract.Options{}, err
	}
	srcTag, err := formulaTag(src)
	if err != nil {
		return extract.Options{}, err
	}
	opts := extract.Options{
		Language:       src.Name,
		ExtraKeys:      cfg.ExtraKeys,
		IgnoreLanguage: cfg.IgnoreLanguage,
		Translate:      cfg.GoogleTranslate,
		SourceTag:      srcTag,
	}
	if cfg.TargetLanguage != "" {
		dst, err := langs.Lookup(cfg.TargetLanguage)
		if err != nil {
			return extract.Options{}, err
		}
		if opts.TargetTag, err = formulaTag(dst); err != nil {
			return extract.Options{}, err
		}
	}
	return opts, nil
}

func formulaTag(l locale.Language) (string, error) {
	tag, err := l.ParseTag()
	if err != nil {
		return "", fmt.Errorf("language %s: bad locale tag %q: %w", l.Name, l.Tag, err)
	}
	return tag.String(), nil
}

// extractAll extracts files with at most jobs running at once. Results keep
// discovery order regardless of completion order.
func extractAll(ctx context.Context, files []string, opts extract.Options, jobs int, rep *Reporter) ([]extract.FileResult, error) {
	results := make([]extract.FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = extract.File(path, opts)
			rep.FileDone(results[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extract interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract interrupted: %w", err)
	}
	return results, nil
}

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Found %d %s files", stats.Total, TargetFile)
	log.Info("Language: %s", cfg.Language)
	if len(cfg.ExtraKeys) > 0 {
		log.Info("Extra keys: %v", cfg.ExtraKeys)
	}
	if cfg.IgnoreLanguage != "" {
		log.Info("Ignoring files already translated to: %s", cfg.IgnoreLanguage)
	}
	if cfg.GoogleTranslate {
		log.Info("Google Translate formulas: %s -> %s", cfg.Language, cfg.TargetLanguage)
	}
	if cfg.Jobs > 1 {
		log.Debug("Parsing with %d jobs", cfg.Jobs)
	}
}

// logDuplicates reports keys defined by several mods. All rows are kept; a
// later mod usually overrides an earlier one in game, so these are worth a
// look.
func logDuplicates(log *logging.Logger, dups []dump.Duplicate, stats *RunStats) {
	stats.DuplicateKeys = len(dups)
	if len(dups) == 0 {
		return
	}
	if !log.Verbose() {
		log.Warn("%d keys are defined by more than one file (all rows kept, use --verbose to list)", len(dups))
		return
	}
	log.Warn("%d keys are defined by more than one file (all rows kept):", len(dups))
	for _, d := range dups {
		log.Debug("  %s: %v", d.Key, d.Paths)
	}
}
