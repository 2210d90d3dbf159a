package display

import (
	"fmt"
	"io"

	"github.com/backmassage/romsweep/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, ` _ __ ___  _ __ ___  _____      _____  ___ _ __
| '__/ _ \| '_ `+"`"+` _ \/ __\ \ /\ / / _ \/ _ \ '_ \
| | | (_) | | | | | \__ \\ V  V /  __/  __/ |_) |
|_|  \___/|_| |_| |_|___/ \_/\_/ \___|\___| .__/
                                          |_|
`)
	fmt.Fprint(w, term.NC)
}
