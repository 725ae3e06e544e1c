//go:build ebiten

package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gridca/internal/render"
	"gridca/internal/ui"
	"gridca/pkg/core"
	"gridca/pkg/engine"
)

// Game adapts a running simulation to the ebiten.Game interface, drawing
// frames from a Live sink.
type Game struct {
	live    *Live
	run     *engine.Run
	painter *render.GridPainter
	overlay *ui.Overlay
	refresh *core.FixedStep

	onColor   color.Color
	offColor  color.Color
	threshold float64

	scale  int
	status string
}

// New constructs a Game drawing frames of the given shape from live.
func New(live *Live, run *engine.Run, size core.Size, scale int) *Game {
	if scale < 1 {
		scale = 1
	}
	return &Game{
		live:      live,
		run:       run,
		painter:   render.NewGridPainter(size.W, size.H),
		overlay:   ui.NewOverlay(),
		refresh:   core.NewFixedStep(4),
		onColor:   color.White,
		offColor:  color.Black,
		threshold: 0.5,
		scale:     scale,
	}
}

// Update handles input and refreshes the status line.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.run.Stop()
		return ebiten.Termination
	}
	g.overlay.Update()

	if g.refresh.ShouldStep() {
		_, t := g.live.Latest()
		state := "running"
		if g.run.Done() {
			state = "done"
		}
		g.status = fmt.Sprintf("frame %d  t=%g  %s", g.live.Len()-1, t, state)
	}
	return nil
}

// Draw renders the latest frame and the overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	frame, _ := g.live.Latest()
	if frame != nil {
		g.painter.Blit(screen, frame.Cells(), g.threshold, g.onColor, g.offColor, g.scale)
	}
	g.overlay.Draw(screen, g.status)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.painter.Size()
	return w * g.scale, h * g.scale
}
