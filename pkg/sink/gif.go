package sink

import (
	"image"
	"image/color"
	"image/gif"
	"io"

	"gridca/pkg/core"
)

// GIF collects frames and encodes them as an animated GIF on Finalize. Cell
// values are clamped to [Lo, Hi] and quantized through the palette.
type GIF struct {
	Base

	w       io.Writer
	palette color.Palette
	delay   int

	// Lo and Hi bound the cell value range mapped onto the palette.
	Lo, Hi float64
}

// GrayPalette returns an n-entry black-to-white ramp.
func GrayPalette(n int) color.Palette {
	if n < 2 {
		n = 2
	}
	p := make(color.Palette, n)
	for i := range p {
		v := uint8(i * 255 / (n - 1))
		p[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return p
}

// NewGIF returns a GIF sink writing to w with the given per-frame delay in
// hundredths of a second. A nil palette defaults to a 16-step gray ramp.
func NewGIF(w io.Writer, palette color.Palette, delay int) *GIF {
	if palette == nil {
		palette = GrayPalette(16)
	}
	if delay < 1 {
		delay = 1
	}
	return &GIF{w: w, palette: palette, delay: delay, Lo: 0, Hi: 1}
}

// Finalize encodes the stored frames and writes the GIF.
func (s *GIF) Finalize() error {
	n := s.Len()
	if n == 0 {
		return nil
	}
	out := &gif.GIF{
		Image: make([]*image.Paletted, 0, n),
		Delay: make([]int, 0, n),
	}
	for i := 0; i < n; i++ {
		out.Image = append(out.Image, s.paletted(s.At(i)))
		out.Delay = append(out.Delay, s.delay)
	}
	return gif.EncodeAll(s.w, out)
}

func (s *GIF) paletted(g *core.Grid) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, g.W, g.H), s.palette)
	lo, hi := s.Lo, s.Hi
	if hi <= lo {
		hi = lo + 1
	}
	last := len(s.palette) - 1
	for i, v := range g.Cells() {
		t := (v - lo) / (hi - lo)
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		img.Pix[i] = uint8(int(t*float64(last) + 0.5))
	}
	return img
}
