package display

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// PrintTable renders rows under header as a bordered table.
func PrintTable(w io.Writer, header []string, rows [][]string) {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.AppendBulk(rows)
	t.Render()
}

// PrintFileTable renders paths as a single-column "File" table with an
// index column, like console.table output.
func PrintFileTable(w io.Writer, paths []string) {
	rows := make([][]string, len(paths))
	for i, p := range paths {
		rows[i] = []string{strconv.Itoa(i), p}
	}
	PrintTable(w, []string{"(index)", "File"}, rows)
}
