// Package extract turns one Localization.txt stream into dump rows: it picks
// the requested language column and extra columns, drops main-menu entries,
// and stops early when the ignore-language column shows the file is already
// translated.
package extract

import (
	"fmt"
	"strings"
)

// Row is one dump line.
type Row struct {
	Key         string
	Value       string   // Quoted literal or GOOGLETRANSLATE formula.
	ExtraValues []string // Aligned with Options.ExtraKeys.
	Text        string   // Source text with double quotes stripped.
}

// Status is the terminal state of one source file.
type Status int

const (
	StatusPending Status = iota
	StatusContributed
	StatusIgnored
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusContributed:
		return "contributed"
	case StatusIgnored:
		return "ignored"
	case StatusErrored:
		return "errored"
	default:
		return "pending"
	}
}

// FileResult is the outcome of extracting one file. Rows is empty unless
// Status is StatusContributed.
type FileResult struct {
	Path   string
	Status Status
	Rows   []Row
	Err    error // Open or parse failure behind StatusErrored, if any.
}

// Options selects columns and the value rendering.
type Options struct {
	Language       string   // Source language column.
	ExtraKeys      []string // Extra columns, in output order.
	IgnoreLanguage string   // Non-empty cell in this column ignores the file.
	Translate      bool     // Render GOOGLETRANSLATE formulas.
	SourceTag      string   // Locale tag of Language, e.g. "en-US".
	TargetTag      string   // Locale tag of the target language.
}

// Sanitize strips every double quote from a source value.
func Sanitize(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

// RenderValue renders a sanitized source text for the dump value column.
func RenderValue(text string, opts Options) string {
	if opts.Translate {
		return Formula(text, opts.SourceTag, opts.TargetTag)
	}
	return `"` + text + `"`
}

// Formula builds the Google Sheets translate formula for text.
func Formula(text, sourceTag, targetTag string) string {
	return fmt.Sprintf(`=GOOGLETRANSLATE("%s"; "%s"; "%s" )`, text, sourceTag, targetTag)
}
