package sink

import (
	"fmt"
	"io"

	"gridca/pkg/core"
)

// Terminal renders each frame as block art to a writer. Cells at or above
// the threshold print as full blocks.
type Terminal struct {
	Base

	w         io.Writer
	threshold float64
	home      bool
}

// NewTerminal returns a terminal sink writing to w. When home is true the
// cursor is moved to the top-left before each frame instead of scrolling.
func NewTerminal(w io.Writer, threshold float64, home bool) *Terminal {
	return &Terminal{w: w, threshold: threshold, home: home}
}

// PushFrame stores the frame and renders it.
func (t *Terminal) PushFrame(g *core.Grid, tm float64) {
	t.Base.PushFrame(g, tm)
	if t.home {
		fmt.Fprint(t.w, "\x1b[H\x1b[2J")
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y) >= t.threshold {
				fmt.Fprint(t.w, "██")
			} else {
				fmt.Fprint(t.w, "  ")
			}
		}
		fmt.Fprintln(t.w)
	}
	fmt.Fprintf(t.w, "t=%g\n", tm)
}
