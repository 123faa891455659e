package dump

import (
	"fmt"
	"os"
	"strings"

	"github.com/sdtd-tools/localedump/internal/extract"
)

// Field separators. Formula mode avoids the comma so commas inside the
// translated text do not split fields when pasted into a sheet.
const (
	LiteralSeparator = ","
	FormulaSeparator = "º"
)

// Separator returns the field separator for the value rendering mode.
func Separator(translate bool) string {
	if translate {
		return FormulaSeparator
	}
	return LiteralSeparator
}

// Render joins each row as key, every extra value, then the value, separated
// by sep; rows are joined by "\n" with no trailing newline.
func Render(rows []extract.Row, sep string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(row.Key)
		b.WriteString(sep)
		for _, v := range row.ExtraValues {
			b.WriteString(v)
			b.WriteString(sep)
		}
		b.WriteString(row.Value)
	}
	return b.String()
}

// WriteText renders rows and writes them to path as UTF-8, replacing any
// existing file.
func WriteText(path string, rows []extract.Row, sep string) error {
	if err := os.WriteFile(path, []byte(Render(rows, sep)), 0o644); err != nil {
		return fmt.Errorf("write dump %s: %w", path, err)
	}
	return nil
}
