// Package display renders the run's terminal output: banner, progress bar
// and summary tables.
package display

import (
	"io"
	"sync/atomic"

	"github.com/schollz/progressbar/v3"
)

// Progress advances one step per processed file. A disabled Progress is a
// no-op, so callers never branch on it.
type Progress struct {
	bar  *progressbar.ProgressBar
	done atomic.Int64
}

// NewProgress starts a bar of total steps drawn to w. When enabled is false
// nothing is drawn.
func NewProgress(w io.Writer, total int, enabled bool) *Progress {
	if !enabled {
		return &Progress{}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Dumping"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(w, "\n") }),
	)
	return &Progress{bar: bar}
}

// Step advances the bar by one file. Safe for concurrent use.
func (p *Progress) Step() {
	p.done.Add(1)
	if p.bar == nil {
		return
	}
	_ = p.bar.Add(1)
}

// Finish completes the bar.
func (p *Progress) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}

// Current reports how many steps were taken.
func (p *Progress) Current() int { return int(p.done.Load()) }
