package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Column names the extractor always looks for. Header names are compared
// lowercased with spaces removed.
const (
	keyColumn      = "key"
	mainMenuColumn = "usedinmainmenu"
)

// Result is the parse outcome of one stream.
type Result struct {
	Rows    []Row
	Ignored bool // The ignore-language column was populated; Rows is empty.
}

// header maps normalized column names to their record index.
type header map[string]int

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// newHeader indexes the header record. On duplicate names the last column
// wins.
func newHeader(record []string) header {
	h := make(header, len(record))
	for i, name := range record {
		n := normalizeColumn(name)
		h[n] = i
		if compact := strings.ReplaceAll(n, " ", ""); compact != n {
			if _, exists := h[compact]; !exists {
				h[compact] = i
			}
		}
	}
	return h
}

// get returns the cell for column name, or "" when the column is absent or
// the record is short.
func (h header) get(record []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// Extract reads a Localization.txt stream record by record. A leading UTF-8
// BOM is dropped. An empty stream yields no rows and no error.
func Extract(r io.Reader, opts Options) (Result, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("read header: %w", err)
	}
	h := newHeader(first)

	lang := normalizeColumn(opts.Language)
	ignore := normalizeColumn(opts.IgnoreLanguage)
	extras := make([]string, len(opts.ExtraKeys))
	for i, k := range opts.ExtraKeys {
		extras[i] = normalizeColumn(k)
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, err
		}

		if ignore != "" && h.get(record, ignore) != "" {
			return Result{Ignored: true}, nil
		}

		key := h.get(record, keyColumn)
		source := h.get(record, lang)
		if key == "" || source == "" || h.get(record, mainMenuColumn) != "" {
			continue
		}

		extraValues := make([]string, len(extras))
		for i, name := range extras {
			extraValues[i] = h.get(record, name)
		}
		text := Sanitize(source)
		rows = append(rows, Row{
			Key:         key,
			Value:       RenderValue(text, opts),
			ExtraValues: extraValues,
			Text:        text,
		})
	}
	return Result{Rows: rows}, nil
}

// File extracts path and classifies it. An ignore trigger wins over every
// other outcome; an open or parse failure, or zero emitted rows, is
// StatusErrored.
func File(path string, opts Options) FileResult {
	res := FileResult{Path: path}

	f, err := os.Open(path)
	if err != nil {
		res.Status = StatusErrored
		res.Err = err
		return res
	}
	defer f.Close()

	out, err := Extract(f, opts)
	switch {
	case out.Ignored:
		res.Status = StatusIgnored
	case err != nil:
		res.Status = StatusErrored
		res.Err = err
	case len(out.Rows) == 0:
		res.Status = StatusErrored
	default:
		res.Status = StatusContributed
		res.Rows = out.Rows
	}
	return res
}
