package display

import (
	"fmt"
	"io"

	"github.com/sdtd-tools/localedump/internal/term"
)

const banner = `  ████████████████
  ████████████████
           ██████
          ███████
        ████████
       ████████
       ███████
      ████████
     ███████
     ███████
    ██████
   ███████
    ████
    ███
   █
`

// PrintBanner writes the 7 Days to Die logo; uses Red if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Paint(term.Red, banner))
}
