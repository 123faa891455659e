package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sdtd-tools/localedump/internal/display"
	"github.com/sdtd-tools/localedump/internal/extract"
	"github.com/sdtd-tools/localedump/internal/logging"
)

// Reporter observes a run: it draws the progress bar while files are
// extracted and prints the summary tables afterwards. It never changes the
// outcome of a run.
type Reporter struct {
	out          io.Writer // Summary tables.
	progressOut  io.Writer
	showProgress bool
	log          *logging.Logger
	progress     *display.Progress
}

// NewReporter returns a Reporter printing tables to out and the progress bar
// to progressOut.
func NewReporter(out, progressOut io.Writer, log *logging.Logger, showProgress bool) *Reporter {
	return &Reporter{
		out:          out,
		progressOut:  progressOut,
		showProgress: showProgress,
		log:          log,
		progress:     display.NewProgress(progressOut, 0, false),
	}
}

// Start sizes the progress bar to total files.
func (r *Reporter) Start(total int) {
	r.progress = display.NewProgress(r.progressOut, total, r.showProgress)
}

// FileDone advances the bar by one file and logs its outcome. Safe for
// concurrent use.
func (r *Reporter) FileDone(res extract.FileResult) {
	switch {
	case res.Err != nil:
		r.log.Warn("Cannot parse %s: %v", res.Path, res.Err)
	case res.Status == extract.StatusContributed:
		r.log.Debug("%s: %d rows", res.Path, len(res.Rows))
	default:
		r.log.Debug("%s: %s", res.Path, res.Status)
	}
	r.progress.Step()
}

// Finish completes the progress bar.
func (r *Reporter) Finish() {
	r.progress.Finish()
}

// Completed reports how many files have been reported done.
func (r *Reporter) Completed() int { return r.progress.Current() }

// Summary prints where the dump went, then the ignored and errored file
// tables when they are non-empty.
func (r *Reporter) Summary(stats *RunStats, outputs []string, ignoreLanguage string) {
	fmt.Fprintln(r.out)
	for _, p := range outputs {
		r.log.Success("Localization file created at %s", displayPath(p))
	}
	r.log.Info("%d of %d files contributed %d rows", stats.Contributed, stats.Total, stats.Rows)

	if len(stats.Ignored) > 0 {
		fmt.Fprintln(r.out)
		r.log.Warn("Files ignored because of the ignored language (%s)", ignoreLanguage)
		display.PrintFileTable(r.out, stats.Ignored)
	}
	if len(stats.Errored) > 0 {
		fmt.Fprintln(r.out)
		r.log.Warn("Files with errors (or ignored), should be checked manually for non existing " +
			"selected language or malformed csv content (or keys containing usedInMainMenu):")
		display.PrintFileTable(r.out, stats.Errored)
	}
}

// displayPath prefixes relative paths with "./" so they read as paths
// in the summary.
func displayPath(p string) string {
	if filepath.IsAbs(p) || strings.HasPrefix(p, ".") {
		return p
	}
	return "." + string(filepath.Separator) + p
}
