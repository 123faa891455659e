package dump

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sdtd-tools/localedump/internal/extract"
)

// SheetName is the worksheet the workbook export writes to.
const SheetName = "Sheet1"

// XLSXOptions controls the workbook export.
type XLSXOptions struct {
	Translate bool   // Write GOOGLETRANSLATE cell formulas instead of text.
	SourceTag string // Locale tag of the source language.
	TargetTag string // Locale tag of the target language.
}

// CellFormula returns the OOXML form of the translate formula. Workbook
// formulas separate arguments with commas and carry no leading "=".
func CellFormula(text, sourceTag, targetTag string) string {
	return fmt.Sprintf(`GOOGLETRANSLATE("%s","%s","%s")`, text, sourceTag, targetTag)
}

// WriteXLSX writes rows to a new workbook at path, one row per line, in the
// same column order as the text dump. The first row is written as plain text.
func WriteXLSX(path string, rows []extract.Row, opts XLSXOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		r := i + 1
		cells := make([]interface{}, 0, len(row.ExtraValues)+2)
		cells = append(cells, row.Key)
		for _, v := range row.ExtraValues {
			cells = append(cells, v)
		}
		valueCol := len(cells) + 1
		if i == 0 || !opts.Translate {
			cells = append(cells, row.Text)
		}

		start, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return fmt.Errorf("xlsx row %d: %w", r, err)
		}
		if err := f.SetSheetRow(SheetName, start, &cells); err != nil {
			return fmt.Errorf("xlsx row %d: %w", r, err)
		}

		if i > 0 && opts.Translate {
			cell, err := excelize.CoordinatesToCellName(valueCol, r)
			if err != nil {
				return fmt.Errorf("xlsx row %d: %w", r, err)
			}
			if err := f.SetCellFormula(SheetName, cell, CellFormula(row.Text, opts.SourceTag, opts.TargetTag)); err != nil {
				return fmt.Errorf("xlsx formula %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	return nil
}
