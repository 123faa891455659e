// Package dump merges extracted rows into the consolidated dump and writes
// it as delimited text or as an .xlsx workbook.
package dump

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sdtd-tools/localedump/internal/extract"
)

// HeaderKey is the key cell of the synthetic header row.
const HeaderKey = "Key"

// HeaderRow builds the synthetic first row: "Key", the extra-key names, and
// label in the value column.
func HeaderRow(extraKeys []string, label string) extract.Row {
	return extract.Row{
		Key:         HeaderKey,
		Value:       label,
		ExtraValues: append([]string(nil), extraKeys...),
		Text:        label,
	}
}

// Aggregate concatenates the rows of contributing files in the given order,
// stable-sorts them by key with the collation rules of tag, and prepends
// header. The header is present even when no file contributed.
func Aggregate(results []extract.FileResult, header extract.Row, tag language.Tag) []extract.Row {
	var rows []extract.Row
	for _, r := range results {
		if r.Status != extract.StatusContributed {
			continue
		}
		rows = append(rows, r.Rows...)
	}
	SortRows(rows, tag)
	return append([]extract.Row{header}, rows...)
}

// SortRows stable-sorts rows by key using locale-aware collation.
func SortRows(rows []extract.Row, tag language.Tag) {
	c := collate.New(tag)
	sort.SliceStable(rows, func(i, j int) bool {
		return c.CompareString(rows[i].Key, rows[j].Key) < 0
	})
}
