package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Grid stores a 2D field of float64 cell values in row-major order. A
// simulation carries two grids of identical shape per name: the source,
// read during a sweep, and the destination, written by it.
type Grid struct {
	W, H int
	data []float64
}

// NewGrid allocates a zero-filled grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, data: make([]float64, w*h)}
}

// NewGridFrom allocates a grid and copies the provided cell values into it.
// The slice length must be w*h; extra values are ignored, missing ones stay
// zero.
func NewGridFrom(w, h int, cells []float64) *Grid {
	g := NewGrid(w, h)
	copy(g.data, cells)
	return g
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []float64 { return g.data }

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// At returns the cell value at in-bounds coordinates (x, y).
func (g *Grid) At(x, y int) float64 { return g.data[y*g.W+x] }

// Set writes the cell value at in-bounds coordinates (x, y).
func (g *Grid) Set(x, y int, v float64) { g.data[y*g.W+x] = v }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Read resolves (x, y) through the overflow policy and returns the cell
// value. Under Skip an out-of-bounds coordinate reports ok == false and the
// value must be treated as absent, not zero.
func (g *Grid) Read(x, y int, of Overflow) (float64, bool) {
	if x >= 0 && x < g.W && y >= 0 && y < g.H {
		return g.data[y*g.W+x], true
	}
	if of == Wrap {
		x, y = g.Wrap(x, y)
		return g.data[y*g.W+x], true
	}
	return 0, false
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// Fill sets every cell to v.
func (g *Grid) Fill(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.W, g.H)
	copy(c.data, g.data)
	return c
}

// CopyFrom overwrites the grid contents with those of src. Shapes must match.
func (g *Grid) CopyFrom(src *Grid) {
	copy(g.data, src.data)
}

// SameShape reports whether both grids have identical dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return o != nil && g.W == o.W && g.H == o.H
}

// Equal reports whether both grids have the same shape and cell values.
func (g *Grid) Equal(o *Grid) bool {
	if !g.SameShape(o) {
		return false
	}
	for i, v := range g.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}
