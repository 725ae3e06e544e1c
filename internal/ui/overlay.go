//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the status line on top of the simulation view.
type Overlay struct {
	visible bool
	shadow  color.Color
}

// NewOverlay constructs a visible overlay.
func NewOverlay() *Overlay {
	return &Overlay{visible: true, shadow: color.RGBA{A: 160}}
}

// Update toggles visibility with Tab.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.visible = !o.visible
	}
}

// Draw renders the status text in the top-left corner.
func (o *Overlay) Draw(screen *ebiten.Image, status string) {
	if !o.visible || status == "" {
		return
	}
	face := basicfont.Face7x13
	text.Draw(screen, status, face, 5, 14, o.shadow)
	text.Draw(screen, status, face, 4, 13, color.White)
}
